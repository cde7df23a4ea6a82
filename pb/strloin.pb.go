// Package pb holds the wire messages and service definition of strloin.proto.
package pb

import (
	"github.com/golang/protobuf/proto"
)

type Range struct {
	Start int64 `protobuf:"varint,1,opt,name=start,proto3" json:"start,omitempty"`
	End   int64 `protobuf:"varint,2,opt,name=end,proto3" json:"end,omitempty"`
}

func (m *Range) Reset()         { *m = Range{} }
func (m *Range) String() string { return proto.CompactTextString(m) }
func (*Range) ProtoMessage()    {}

func (m *Range) GetStart() int64 {
	if m != nil {
		return m.Start
	}
	return 0
}

func (m *Range) GetEnd() int64 {
	if m != nil {
		return m.End
	}
	return 0
}

type SliceRequest struct {
	Corpus string   `protobuf:"bytes,1,opt,name=corpus,proto3" json:"corpus,omitempty"`
	Key    string   `protobuf:"bytes,2,opt,name=key,proto3" json:"key,omitempty"`
	Ranges []*Range `protobuf:"bytes,3,rep,name=ranges,proto3" json:"ranges,omitempty"`
}

func (m *SliceRequest) Reset()         { *m = SliceRequest{} }
func (m *SliceRequest) String() string { return proto.CompactTextString(m) }
func (*SliceRequest) ProtoMessage()    {}

func (m *SliceRequest) GetCorpus() string {
	if m != nil {
		return m.Corpus
	}
	return ""
}

func (m *SliceRequest) GetKey() string {
	if m != nil {
		return m.Key
	}
	return ""
}

func (m *SliceRequest) GetRanges() []*Range {
	if m != nil {
		return m.Ranges
	}
	return nil
}

type SliceResponse struct {
	Value    string `protobuf:"bytes,1,opt,name=value,proto3" json:"value,omitempty"`
	Borrowed bool   `protobuf:"varint,2,opt,name=borrowed,proto3" json:"borrowed,omitempty"`
}

func (m *SliceResponse) Reset()         { *m = SliceResponse{} }
func (m *SliceResponse) String() string { return proto.CompactTextString(m) }
func (*SliceResponse) ProtoMessage()    {}

func (m *SliceResponse) GetValue() string {
	if m != nil {
		return m.Value
	}
	return ""
}

func (m *SliceResponse) GetBorrowed() bool {
	if m != nil {
		return m.Borrowed
	}
	return false
}

type Request struct {
	Corpus string `protobuf:"bytes,1,opt,name=corpus,proto3" json:"corpus,omitempty"`
	Key    string `protobuf:"bytes,2,opt,name=key,proto3" json:"key,omitempty"`
	Value  string `protobuf:"bytes,3,opt,name=value,proto3" json:"value,omitempty"`
}

func (m *Request) Reset()         { *m = Request{} }
func (m *Request) String() string { return proto.CompactTextString(m) }
func (*Request) ProtoMessage()    {}

func (m *Request) GetCorpus() string {
	if m != nil {
		return m.Corpus
	}
	return ""
}

func (m *Request) GetKey() string {
	if m != nil {
		return m.Key
	}
	return ""
}

func (m *Request) GetValue() string {
	if m != nil {
		return m.Value
	}
	return ""
}

type Response struct {
	Value string `protobuf:"bytes,1,opt,name=value,proto3" json:"value,omitempty"`
}

func (m *Response) Reset()         { *m = Response{} }
func (m *Response) String() string { return proto.CompactTextString(m) }
func (*Response) ProtoMessage()    {}

func (m *Response) GetValue() string {
	if m != nil {
		return m.Value
	}
	return ""
}

type DeleteResponse struct {
	Deleted bool `protobuf:"varint,1,opt,name=deleted,proto3" json:"deleted,omitempty"`
}

func (m *DeleteResponse) Reset()         { *m = DeleteResponse{} }
func (m *DeleteResponse) String() string { return proto.CompactTextString(m) }
func (*DeleteResponse) ProtoMessage()    {}

func (m *DeleteResponse) GetDeleted() bool {
	if m != nil {
		return m.Deleted
	}
	return false
}
