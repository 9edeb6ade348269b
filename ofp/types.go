package ofp

import "fmt"

// MessageType is the second header byte.
type MessageType uint8

const (
	TypeHello MessageType = iota
	TypeError
	TypeEchoRequest
	TypeEchoReply
	TypeExperimenter
	TypeFeaturesRequest
	TypeFeaturesReply
	TypeGetConfigRequest
	TypeGetConfigReply
	TypeSetConfig
	TypePacketIn
	TypeFlowRemoved
	TypePortStatus
	TypePacketOut
	TypeFlowMod
	TypeGroupMod
	TypePortMod
	TypeTableMod
	TypeMultipartRequest
	TypeMultipartReply
	TypeBarrierRequest
	TypeBarrierReply
	TypeQueueGetConfigRequest
	TypeQueueGetConfigReply
	TypeRoleRequest
	TypeRoleReply
	TypeGetAsyncRequest
	TypeGetAsyncReply
	TypeSetAsync
	TypeMeterMod
)

var typeNames = [...]string{
	"HELLO",
	"ERROR",
	"ECHO_REQUEST",
	"ECHO_REPLY",
	"EXPERIMENTER",
	"FEATURES_REQUEST",
	"FEATURES_REPLY",
	"GET_CONFIG_REQUEST",
	"GET_CONFIG_REPLY",
	"SET_CONFIG",
	"PACKET_IN",
	"FLOW_REMOVED",
	"PORT_STATUS",
	"PACKET_OUT",
	"FLOW_MOD",
	"GROUP_MOD",
	"PORT_MOD",
	"TABLE_MOD",
	"MULTIPART_REQUEST",
	"MULTIPART_REPLY",
	"BARRIER_REQUEST",
	"BARRIER_REPLY",
	"QUEUE_GET_CONFIG_REQUEST",
	"QUEUE_GET_CONFIG_REPLY",
	"ROLE_REQUEST",
	"ROLE_REPLY",
	"GET_ASYNC_REQUEST",
	"GET_ASYNC_REPLY",
	"SET_ASYNC",
	"METER_MOD",
}

func (t MessageType) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("TYPE_%d", uint8(t))
}
