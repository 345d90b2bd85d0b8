package messages

import "github.com/go-i2p/sshwire/lib/common/data"

// Transport layer generic messages, RFC 4253 sections 10 and 11.

// Disconnect is SSH_MSG_DISCONNECT.
type Disconnect struct {
	ReasonCode  data.Uint32
	Description data.String
	Language    data.String
}

func (m *Disconnect) MessageType() uint8 { return MsgDisconnect }

func (m *Disconnect) Fields() []data.Item {
	return []data.Item{&m.ReasonCode, &m.Description, &m.Language}
}

// NewDisconnect returns a Disconnect with an empty language tag.
func NewDisconnect(reason uint32, description string) *Disconnect {
	return &Disconnect{
		ReasonCode:  data.Uint32(reason),
		Description: data.String(description),
		Language:    data.String{},
	}
}

// Ignore is SSH_MSG_IGNORE.
type Ignore struct {
	Data data.String
}

func (m *Ignore) MessageType() uint8 { return MsgIgnore }

func (m *Ignore) Fields() []data.Item { return []data.Item{&m.Data} }

// Unimplemented is SSH_MSG_UNIMPLEMENTED, naming the sequence number of the rejected packet.
type Unimplemented struct {
	SequenceNumber data.Uint32
}

func (m *Unimplemented) MessageType() uint8 { return MsgUnimplemented }

func (m *Unimplemented) Fields() []data.Item { return []data.Item{&m.SequenceNumber} }

// Debug is SSH_MSG_DEBUG.
type Debug struct {
	AlwaysDisplay data.Bool
	Message       data.String
	Language      data.String
}

func (m *Debug) MessageType() uint8 { return MsgDebug }

func (m *Debug) Fields() []data.Item {
	return []data.Item{&m.AlwaysDisplay, &m.Message, &m.Language}
}

// ServiceRequest is SSH_MSG_SERVICE_REQUEST.
type ServiceRequest struct {
	ServiceName data.String
}

func (m *ServiceRequest) MessageType() uint8 { return MsgServiceRequest }

func (m *ServiceRequest) Fields() []data.Item { return []data.Item{&m.ServiceName} }

// ServiceAccept is SSH_MSG_SERVICE_ACCEPT.
type ServiceAccept struct {
	ServiceName data.String
}

func (m *ServiceAccept) MessageType() uint8 { return MsgServiceAccept }

func (m *ServiceAccept) Fields() []data.Item { return []data.Item{&m.ServiceName} }

// NewKeys is SSH_MSG_NEWKEYS. It has no body.
type NewKeys struct{}

func (m *NewKeys) MessageType() uint8 { return MsgNewKeys }

func (m *NewKeys) Fields() []data.Item { return nil }
