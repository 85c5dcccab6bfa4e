// internal/debate/types.go
package debate

// Speaker identifies one of the three message producers.
type Speaker string

const (
	SpeakerBull    Speaker = "bull"
	SpeakerBear    Speaker = "bear"
	SpeakerReferee Speaker = "referee"
)

// MessageType tags a transcript message.
type MessageType string

const (
	MessageBull    MessageType = "bull"
	MessageBear    MessageType = "bear"
	MessageReferee MessageType = "referee"
	MessageSystem  MessageType = "system"
	MessageHedera  MessageType = "hedera"
	MessageError   MessageType = "error"
)

// MessageType returns the transcript message type produced by this speaker.
func (s Speaker) MessageType() MessageType {
	return MessageType(s)
}

// Status is the session lifecycle state. Transitions form a strict DAG:
// idle -> loading -> debating -> completed | error.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusDebating  Status = "debating"
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
)

// Message is one entry in the transcript. Which optional fields are set
// depends on Type.
type Message struct {
	Type    MessageType `json:"type"`
	Content string      `json:"content"`
	Round   int         `json:"round,omitempty"`

	// bull / bear
	Confidence *int     `json:"confidence,omitempty"`
	KeyPoints  []string `json:"key_points,omitempty"`

	// referee
	Winner          string   `json:"winner,omitempty"`
	ConfidenceScore *int     `json:"confidence_score,omitempty"`
	WagerAmount     *float64 `json:"wager_amount,omitempty"`
	KeyFactors      []string `json:"key_factors,omitempty"`

	// hedera
	HCSTx   *TxRef `json:"hcs_tx,omitempty"`
	WagerTx *TxRef `json:"wager_tx,omitempty"`

	// system
	Data map[string]any `json:"data,omitempty"`
}

// Final reports whether the message carries its finality field and is
// therefore immutable. There is no separate identifier: openness is
// encoded purely as the absence of this field, so a stray late token for
// an already-finalized (speaker, round) starts a new message instead of
// corrupting the finalized one.
func (m Message) Final() bool {
	switch m.Type {
	case MessageBull, MessageBear:
		return m.Confidence != nil
	case MessageReferee:
		return m.Winner != ""
	default:
		return true
	}
}

// Summary is a denormalized projection of the referee verdict and ledger
// messages, kept so consumers need not re-scan the transcript.
type Summary struct {
	Winner          string   `json:"winner,omitempty"`
	ConfidenceScore *int     `json:"confidence_score,omitempty"`
	WagerAmount     *float64 `json:"wager_amount,omitempty"`
	HCSTx           *TxRef   `json:"hcs_tx,omitempty"`
	WagerTx         *TxRef   `json:"wager_tx,omitempty"`
}

// Session is the published snapshot of one debate. Messages are in
// conversation order and are never reordered; readers must treat the
// snapshot as immutable.
type Session struct {
	Status         Status    `json:"status"`
	Symbol         string    `json:"symbol"`
	Query          string    `json:"query"`
	Messages       []Message `json:"messages"`
	Summary        *Summary  `json:"summary,omitempty"`
	CurrentSpeaker Speaker   `json:"current_speaker,omitempty"`
}

// Buffer accumulates one speaker's in-flight text while their message is
// still open. Not part of the durable transcript.
type Buffer struct {
	Text  string
	Round int
}

// Buffers holds one accumulator per speaker.
type Buffers struct {
	Bull    Buffer
	Bear    Buffer
	Referee Buffer
}

func (b *Buffers) of(s Speaker) *Buffer {
	switch s {
	case SpeakerBear:
		return &b.Bear
	case SpeakerReferee:
		return &b.Referee
	default:
		return &b.Bull
	}
}

// State is the full reducer state: the published session plus the
// transient accumulators and the shared round counter.
type State struct {
	Session Session
	Buffers Buffers
	Round   int
}

// NewState returns the initial state for a freshly started session.
func NewState(query, symbol string) State {
	return State{
		Session: Session{
			Status: StatusLoading,
			Symbol: symbol,
			Query:  query,
		},
		Buffers: Buffers{
			Bull:    Buffer{Round: 1},
			Bear:    Buffer{Round: 1},
			Referee: Buffer{Round: 1},
		},
		Round: 1,
	}
}
