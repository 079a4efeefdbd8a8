package firmware

// SlaveId is wire-compatible with the slave_id field already carried on
// Ping/Pong.
type SlaveId uint32

// MasterLocalID is the reserved slave id a Master node answers Ping against
// for itself, distinct from any of its configured slaves.
const MasterLocalID SlaveId = 0

type NodeModeKind int

const (
	ModeMaster NodeModeKind = iota
	ModeSlave
)

// NodeMode is Master{slave_ids} | Slave{id}, matching the bus role a node
// was configured with.
type NodeMode struct {
	Kind     NodeModeKind
	SlaveIDs []SlaveId // valid when Kind == ModeMaster
	ID       SlaveId   // valid when Kind == ModeSlave
}

func Master(slaveIDs ...SlaveId) NodeMode {
	return NodeMode{Kind: ModeMaster, SlaveIDs: slaveIDs}
}

func Slave(id SlaveId) NodeMode {
	return NodeMode{Kind: ModeSlave, ID: id}
}

// localID is the id this node answers a Ping against.
func (m NodeMode) localID() SlaveId {
	if m.Kind == ModeSlave {
		return m.ID
	}
	return MasterLocalID
}
