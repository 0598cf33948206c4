package domain

type RunStatus string

const (
	RunStatusQueued         RunStatus = "queued"
	RunStatusInProgress     RunStatus = "in_progress"
	RunStatusCancelling     RunStatus = "cancelling"
	RunStatusCompleted      RunStatus = "completed"
	RunStatusFailed         RunStatus = "failed"
	RunStatusCancelled      RunStatus = "cancelled"
	RunStatusExpired        RunStatus = "expired"
	RunStatusRequiresAction RunStatus = "requires_action"
	RunStatusIncomplete     RunStatus = "incomplete"
)

// Pending reports whether the run is still being processed.
func (s RunStatus) Pending() bool {
	switch s {
	case RunStatusQueued, RunStatusInProgress, RunStatusCancelling:
		return true
	default:
		return false
	}
}

type Run struct {
	ID        string
	ThreadID  string
	Status    RunStatus
	LastError string
}

type Message struct {
	ID    string
	Role  string
	Texts []string
}

type MessageOrder string

const (
	OrderDesc MessageOrder = "desc"
	OrderAsc  MessageOrder = "asc"
)

type ListMessagesRequest struct {
	ThreadID string
	Limit    int
	Order    MessageOrder
}

type StartRunRequest struct {
	ThreadID     string
	AssistantID  string
	Instructions string
}

// PersonaHandle ties together the remote resources a study plan is built on.
type PersonaHandle struct {
	AssistantID   string
	FileID        string
	VectorStoreID string
}

func (h PersonaHandle) IsZero() bool {
	return h.AssistantID == "" && h.FileID == "" && h.VectorStoreID == ""
}

type PersonaParams struct {
	Name         string
	Model        string
	Description  string
	Instructions string
	Temperature  float64
}

const (
	DefaultPersonaName         = "I have a plan"
	DefaultModel               = "gpt-3.5-turbo-0125"
	DefaultPersonaDescription  = "Create a learning plan from your documents."
	DefaultPersonaInstructions = "You are a helpful assistant that can generate a learning plan based on user goals and options."
	DefaultTemperature         = 0.2
	DefaultVectorStoreName     = "ihaveaplan"
	DefaultIndexExpiryDays     = 1
	ExpiryAnchorLastActive     = "last_active_at"
)

type KnowledgeFile struct {
	Path  string
	Name  string
	Size  int64
	Pages int
}

type VectorStoreRequest struct {
	Name         string
	FileIDs      []string
	ExpiryAnchor string
	ExpiryDays   int
}

// Page is one page of a cursor-paginated listing.
type Page struct {
	IDs     []string
	HasMore bool
}

func (p Page) LastID() string {
	if len(p.IDs) == 0 {
		return ""
	}
	return p.IDs[len(p.IDs)-1]
}
