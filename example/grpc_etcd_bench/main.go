package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"strloin/pb"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func main() {
	targets := flag.String("targets", "127.0.0.1:9000", "comma separated grpc targets")
	corpus := flag.String("corpus", "docs", "corpus name")
	concurrency := flag.Int("c", 20, "concurrency")
	total := flag.Int("n", 1000, "total requests")
	docs := flag.Int("docs", 100, "number of documents seeded for load")
	docLen := flag.Int("doc-len", 4096, "length of each seeded document")
	mode := flag.String("mode", "load", "load or verify")
	timeout := flag.Duration("timeout", 2*time.Second, "per-request timeout")
	flag.Parse()

	addrs := splitList(*targets)
	if len(addrs) == 0 {
		fmt.Println("no targets")
		return
	}

	clients, conns, err := newClients(addrs)
	if err != nil {
		fmt.Printf("dial error: %v\n", err)
		return
	}
	defer closeConns(conns)

	switch *mode {
	case "verify":
		if err := runVerify(clients, *corpus, *timeout); err != nil {
			fmt.Printf("verify failed: %v\n", err)
			return
		}
		fmt.Println("verify ok")
	default:
		if err := seed(clients[0], *corpus, *docs, *docLen, *timeout); err != nil {
			fmt.Printf("seed failed: %v\n", err)
			return
		}
		runLoad(clients, *corpus, *docs, *docLen, *total, *concurrency, *timeout)
	}
}

func runVerify(clients []pb.StrloinClient, corpus string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client := clients[0]
	key := "verify_key"
	if _, err := client.Put(ctx, &pb.Request{Corpus: corpus, Key: key, Value: "hello world"}); err != nil {
		return err
	}
	checks := []struct {
		ranges   []*pb.Range
		want     string
		borrowed bool
	}{
		{[]*pb.Range{{Start: 0, End: 5}, {Start: 5, End: 11}}, "hello world", true},
		{[]*pb.Range{{Start: 0, End: 5}, {Start: 6, End: 11}}, "helloworld", false},
		{[]*pb.Range{{Start: 6, End: 11}, {Start: 0, End: 5}}, "worldhello", false},
	}
	for _, c := range checks {
		resp, err := client.Slice(ctx, &pb.SliceRequest{Corpus: corpus, Key: key, Ranges: c.ranges})
		if err != nil {
			return err
		}
		if resp.GetValue() != c.want || resp.GetBorrowed() != c.borrowed {
			return fmt.Errorf("unexpected slice: %q borrowed=%v, want %q borrowed=%v",
				resp.GetValue(), resp.GetBorrowed(), c.want, c.borrowed)
		}
	}
	if _, err := client.Delete(ctx, &pb.Request{Corpus: corpus, Key: key}); err != nil {
		return err
	}
	return nil
}

func seed(client pb.StrloinClient, corpus string, docs, docLen int, timeout time.Duration) error {
	r := rand.New(rand.NewSource(1))
	buf := make([]byte, docLen)
	for i := 0; i < docs; i++ {
		for j := range buf {
			buf[j] = 'a' + byte(r.Intn(26))
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		_, err := client.Put(ctx, &pb.Request{Corpus: corpus, Key: docKey(i), Value: string(buf)})
		cancel()
		if err != nil {
			return err
		}
	}
	return nil
}

// randomRanges returns either an adjacent chain or a shuffled set of
// ranges over a document of length n.
func randomRanges(r *rand.Rand, n int) []*pb.Range {
	count := 1 + r.Intn(4)
	out := make([]*pb.Range, 0, count)
	pos := 0
	if n > 1 {
		pos = r.Intn(n / 2)
	}
	for i := 0; i < count && pos < n; i++ {
		end := pos + 1 + r.Intn(64)
		if end > n {
			end = n
		}
		out = append(out, &pb.Range{Start: int64(pos), End: int64(end)})
		pos = end
	}
	if r.Intn(100) < 30 && len(out) > 1 {
		r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	}
	return out
}

func runLoad(clients []pb.StrloinClient, corpus string, docs, docLen, total, concurrency int, timeout time.Duration) {
	var okCount, errCount, borrowed int64
	start := time.Now()

	var wg sync.WaitGroup
	ch := make(chan int, total)
	for i := 0; i < total; i++ {
		ch <- i
	}
	close(ch)

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + seed))
			for range ch {
				client := clients[r.Intn(len(clients))]
				req := &pb.SliceRequest{
					Corpus: corpus,
					Key:    docKey(r.Intn(docs)),
					Ranges: randomRanges(r, docLen),
				}
				ctx, cancel := context.WithTimeout(context.Background(), timeout)
				resp, err := client.Slice(ctx, req)
				cancel()
				if err != nil {
					atomic.AddInt64(&errCount, 1)
					continue
				}
				atomic.AddInt64(&okCount, 1)
				if resp.GetBorrowed() {
					atomic.AddInt64(&borrowed, 1)
				}
			}
		}(int64(i))
	}
	wg.Wait()

	elapsed := time.Since(start)
	fmt.Printf("done: ok=%d err=%d borrowed=%d qps=%.2f\n",
		okCount, errCount, borrowed, float64(okCount+errCount)/elapsed.Seconds())
}

func docKey(i int) string { return fmt.Sprintf("doc%d", i) }

func newClients(addrs []string) ([]pb.StrloinClient, []*grpc.ClientConn, error) {
	clients := make([]pb.StrloinClient, 0, len(addrs))
	conns := make([]*grpc.ClientConn, 0, len(addrs))
	for _, addr := range addrs {
		conn, err := grpc.Dial(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			closeConns(conns)
			return nil, nil, err
		}
		conns = append(conns, conn)
		clients = append(clients, pb.NewStrloinClient(conn))
	}
	return clients, conns, nil
}

func closeConns(conns []*grpc.ClientConn) {
	for _, c := range conns {
		_ = c.Close()
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
