package strloin

import (
	"context"
	"errors"
	"net"
	"strloin/pb"
	"strloin/registry"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// fromPeerHeader marks a request sent on behalf of another node.
const fromPeerHeader = "x-strloin-from-peer"

// GRPCServer exposes the registered corpora over gRPC.
type GRPCServer struct {
	pb.UnimplementedStrloinServer
}

func (s *GRPCServer) Slice(ctx context.Context, req *pb.SliceRequest) (*pb.SliceResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	c, key, err := lookup(req.GetCorpus(), req.GetKey())
	if err != nil {
		return nil, err
	}
	ranges := make([]Range, len(req.GetRanges()))
	for i, r := range req.GetRanges() {
		ranges[i] = Range{Start: int(r.GetStart()), End: int(r.GetEnd())}
	}
	cow, err := c.Slice(peerContext(ctx), key, ranges)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.SliceResponse{Value: cow.String(), Borrowed: cow.IsBorrowed()}, nil
}

func (s *GRPCServer) Get(ctx context.Context, req *pb.Request) (*pb.Response, error) {
	c, key, err := validateRequest(req)
	if err != nil {
		return nil, err
	}
	doc, err := c.Get(peerContext(ctx), key)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.Response{Value: doc.String()}, nil
}

func (s *GRPCServer) Put(ctx context.Context, req *pb.Request) (*pb.Response, error) {
	c, key, err := validateRequest(req)
	if err != nil {
		return nil, err
	}
	if err := c.Put(peerContext(ctx), key, req.GetValue()); err != nil {
		return nil, toStatus(err)
	}
	return &pb.Response{Value: req.GetValue()}, nil
}

func (s *GRPCServer) Delete(ctx context.Context, req *pb.Request) (*pb.DeleteResponse, error) {
	c, key, err := validateRequest(req)
	if err != nil {
		return nil, err
	}
	if err := c.Delete(peerContext(ctx), key); err != nil {
		return nil, toStatus(err)
	}
	return &pb.DeleteResponse{Deleted: true}, nil
}

// GRPCServerOptions configures ServeGRPC.
type GRPCServerOptions struct {
	ServiceName string
	Registrar   registry.Registrar
	ServerOpts  []grpc.ServerOption
}

// ServeGRPC serves every registered corpus on lis until ctx is done, then
// stops gracefully. With a Registrar the listener address is registered
// under ServiceName for the lifetime of the server.
func ServeGRPC(ctx context.Context, lis net.Listener, opts GRPCServerOptions) error {
	server := grpc.NewServer(opts.ServerOpts...)
	pb.RegisterStrloinServer(server, &GRPCServer{})

	serviceName := opts.ServiceName
	if serviceName == "" {
		serviceName = defaultSvcName
	}
	addr := lis.Addr().String()
	if opts.Registrar != nil {
		if err := opts.Registrar.Register(ctx, serviceName, addr); err != nil {
			return err
		}
		defer func() {
			if err := opts.Registrar.Deregister(context.Background(), serviceName, addr); err != nil {
				logrus.Warnf("deregister %s/%s failed: %v", serviceName, addr, err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		server.GracefulStop()
	}()
	logrus.Infof("strloin gRPC server %s listening on %s", serviceName, addr)
	return server.Serve(lis)
}

// validateRequest performs basic argument checks and resolves the corpus.
func validateRequest(req *pb.Request) (*Corpus, string, error) {
	if req == nil {
		return nil, "", status.Error(codes.InvalidArgument, "request is required")
	}
	return lookup(req.GetCorpus(), req.GetKey())
}

func lookup(corpus, key string) (*Corpus, string, error) {
	if corpus == "" {
		return nil, "", status.Error(codes.InvalidArgument, "corpus is required")
	}
	if key == "" {
		return nil, "", status.Error(codes.InvalidArgument, "key is required")
	}
	c := GetCorpus(corpus)
	if c == nil {
		return nil, "", status.Error(codes.NotFound, ErrCorpusNotFound.Error())
	}
	return c, key, nil
}

// peerContext carries the peer-origin header into the corpus context.
func peerContext(ctx context.Context) context.Context {
	if md, ok := metadata.FromIncomingContext(ctx); ok && len(md.Get(fromPeerHeader)) > 0 {
		return WithFromPeer(ctx)
	}
	return ctx
}

// toStatus maps corpus errors onto gRPC status codes.
func toStatus(err error) error {
	switch {
	case errors.Is(err, ErrInvalidRange), errors.Is(err, ErrKeyRequired):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, ErrCorpusNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, ErrCorpusClosed):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
