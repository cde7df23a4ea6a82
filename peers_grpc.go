package strloin

import (
	"context"
	"strloin/pb"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

// GRPCPeer is a Peer reached over gRPC.
type GRPCPeer struct {
	addr   string
	conn   *grpc.ClientConn
	client pb.StrloinClient
}

// NewGRPCPeer dials addr, with insecure credentials unless opts says
// otherwise.
func NewGRPCPeer(addr string, opts ...grpc.DialOption) (*GRPCPeer, error) {
	if len(opts) == 0 {
		opts = []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	}
	conn, err := grpc.Dial(addr, opts...)
	if err != nil {
		return nil, err
	}
	return &GRPCPeer{
		addr:   addr,
		conn:   conn,
		client: pb.NewStrloinClient(conn),
	}, nil
}

// Addr returns the dialed address.
func (p *GRPCPeer) Addr() string { return p.addr }

func (p *GRPCPeer) Get(ctx context.Context, corpus string, key string) (string, error) {
	resp, err := p.client.Get(outgoing(ctx), &pb.Request{Corpus: corpus, Key: key})
	if err != nil {
		return "", err
	}
	return resp.GetValue(), nil
}

func (p *GRPCPeer) Put(ctx context.Context, corpus string, key string, text string) error {
	_, err := p.client.Put(outgoing(ctx), &pb.Request{Corpus: corpus, Key: key, Value: text})
	return err
}

func (p *GRPCPeer) Delete(ctx context.Context, corpus string, key string) (bool, error) {
	resp, err := p.client.Delete(outgoing(ctx), &pb.Request{Corpus: corpus, Key: key})
	if err != nil {
		return false, err
	}
	return resp.GetDeleted(), nil
}

// Slice asks the remote node to resolve ranges against a document. The
// returned flag reports whether the remote result was borrowed.
func (p *GRPCPeer) Slice(ctx context.Context, corpus string, key string, ranges []Range) (string, bool, error) {
	req := &pb.SliceRequest{Corpus: corpus, Key: key, Ranges: make([]*pb.Range, len(ranges))}
	for i, r := range ranges {
		req.Ranges[i] = &pb.Range{Start: int64(r.Start), End: int64(r.End)}
	}
	resp, err := p.client.Slice(ctx, req)
	if err != nil {
		return "", false, err
	}
	return resp.GetValue(), resp.GetBorrowed(), nil
}

func (p *GRPCPeer) Close() error {
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// outgoing tags peer reads and replicated writes so the receiver does not
// forward them.
func outgoing(ctx context.Context) context.Context {
	if isFromPeer(ctx) {
		return metadata.AppendToOutgoingContext(ctx, fromPeerHeader, "1")
	}
	return ctx
}
