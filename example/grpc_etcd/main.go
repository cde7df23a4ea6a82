package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"strloin"
	"strloin/pb"
	"strloin/registry"
	etcdreg "strloin/registry/etcd"

	clientv3 "go.etcd.io/etcd/client/v3"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func main() {
	// This example can run as a server or a client against gRPC (+ etcd).
	mode := flag.String("mode", "server", "server or client")
	addr := flag.String("addr", "127.0.0.1:9000", "grpc listen address for server")
	target := flag.String("target", "127.0.0.1:9000", "grpc target for client")
	etcdEndpoints := flag.String("etcd", "", "etcd endpoints, comma separated; empty uses -peers")
	peers := flag.String("peers", "", "static peer addresses when etcd is not used")
	service := flag.String("service", "Strloin", "service name for discovery")
	corpus := flag.String("corpus", "docs", "corpus name")
	dir := flag.String("dir", ".", "directory documents are loaded from")
	cacheBytes := flag.Int64("cache-bytes", 64<<20, "document cache size")
	reject := flag.Bool("reject-invalid", false, "fail slices containing invalid ranges")
	logLevel := flag.String("log-level", "info", "logrus level")
	op := flag.String("op", "slice", "client op: slice|get|put|delete")
	key := flag.String("key", "README.md", "document key")
	value := flag.String("value", "", "document text for put")
	ranges := flag.String("ranges", "0:16", "ranges for slice, e.g. 0:5,6:11")
	flag.Parse()

	if err := strloin.SetLogLevel(*logLevel); err != nil {
		fmt.Printf("bad log level: %v\n", err)
		os.Exit(1)
	}

	var err error
	switch *mode {
	case "server":
		policy := strloin.SkipInvalid
		if *reject {
			policy = strloin.RejectInvalid
		}
		err = runServer(serverConfig{
			addr:       *addr,
			endpoints:  *etcdEndpoints,
			peers:      *peers,
			service:    *service,
			corpus:     *corpus,
			dir:        *dir,
			cacheBytes: *cacheBytes,
			policy:     policy,
		})
	case "client":
		err = runClient(*target, *corpus, *op, *key, *value, *ranges)
	default:
		err = fmt.Errorf("invalid mode %q: use server or client", *mode)
	}
	if err != nil {
		fmt.Printf("%s error: %v\n", *mode, err)
		os.Exit(1)
	}
}

type serverConfig struct {
	addr       string
	endpoints  string
	peers      string
	service    string
	corpus     string
	dir        string
	cacheBytes int64
	policy     strloin.Policy
}

func runServer(cfg serverConfig) error {
	ctx, stop := signalContext()
	defer stop()

	c := strloin.NewCorpus(cfg.corpus, cfg.cacheBytes, fileLoader(cfg.dir),
		strloin.WithSliceOptions(strloin.WithPolicy(cfg.policy)))
	defer strloin.DestroyAllCorpora()

	picker := strloin.NewClientPicker(cfg.addr)
	defer picker.Close()
	c.RegisterPeers(picker)

	var reg registry.Registrar = registry.NopRegistrar{}
	if cfg.endpoints != "" {
		cli, err := newEtcdClient(cfg.endpoints)
		if err != nil {
			return err
		}
		defer cli.Close()
		if err := strloin.WatchEtcd(ctx, cli, cfg.service, picker, grpc.WithTransportCredentials(insecure.NewCredentials())); err != nil {
			return err
		}
		reg = etcdreg.NewRegistrar(cli, 10*time.Second)
	} else {
		picker.UpdatePeers(splitList(cfg.peers), func(addr string) (strloin.Peer, error) {
			return strloin.NewGRPCPeer(addr)
		})
	}

	lis, err := net.Listen("tcp", cfg.addr)
	if err != nil {
		return err
	}
	return strloin.ServeGRPC(ctx, lis, strloin.GRPCServerOptions{
		ServiceName: cfg.service,
		Registrar:   reg,
	})
}

// fileLoader serves documents from files under dir.
func fileLoader(dir string) strloin.LoaderFunc {
	return func(ctx context.Context, key string) (string, error) {
		// Clean against a rooted path so keys cannot escape dir.
		name := filepath.Join(dir, filepath.FromSlash(filepath.Clean("/"+key)))
		b, err := os.ReadFile(name)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

func runClient(target, corpus, op, key, value, rangeList string) error {
	conn, err := grpc.Dial(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return err
	}
	defer conn.Close()

	client := pb.NewStrloinClient(conn)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	switch op {
	case "slice":
		rs, err := strloin.ParseRanges(rangeList)
		if err != nil {
			return err
		}
		req := &pb.SliceRequest{Corpus: corpus, Key: key}
		for _, r := range rs {
			req.Ranges = append(req.Ranges, &pb.Range{Start: int64(r.Start), End: int64(r.End)})
		}
		resp, err := client.Slice(ctx, req)
		if err != nil {
			return err
		}
		fmt.Printf("slice %s %s => %q (borrowed=%v)\n", key, rangeList, resp.GetValue(), resp.GetBorrowed())
	case "get":
		resp, err := client.Get(ctx, &pb.Request{Corpus: corpus, Key: key})
		if err != nil {
			return err
		}
		fmt.Printf("get %s => %d bytes\n", key, len(resp.GetValue()))
	case "put":
		if value == "" {
			return errors.New("put needs -value")
		}
		if _, err := client.Put(ctx, &pb.Request{Corpus: corpus, Key: key, Value: value}); err != nil {
			return err
		}
		fmt.Printf("put %s (%d bytes)\n", key, len(value))
	case "delete":
		resp, err := client.Delete(ctx, &pb.Request{Corpus: corpus, Key: key})
		if err != nil {
			return err
		}
		fmt.Printf("delete %s => %v\n", key, resp.GetDeleted())
	default:
		return fmt.Errorf("invalid op: %s", op)
	}
	return nil
}

func newEtcdClient(endpoints string) (*clientv3.Client, error) {
	return clientv3.New(clientv3.Config{
		Endpoints:   splitList(endpoints),
		DialTimeout: 3 * time.Second,
	})
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// signalContext cancels on SIGINT/SIGTERM for graceful shutdown.
func signalContext() (context.Context, func()) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
