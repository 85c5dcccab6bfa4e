// internal/debate/reducer.go
// Pure state transition for the debate transcript. One call per decoded
// event, strictly in stream order; no I/O and no hidden mutation, so the
// same (state, event) pair always produces the same result. Previously
// published snapshots are never touched: the message slice is cloned
// before any change.
package debate

// Reduce applies one stream event and returns the next state.
func Reduce(st State, ev Event) State {
	switch ev.Type {
	case EventBullToken, EventBearToken, EventRefereeToken:
		return reduceToken(st, ev)

	case EventBullComplete, EventBearComplete, EventRefereeComplete:
		return reduceComplete(st, ev)

	case EventStatus:
		if sp := ev.StatusSpeaker(); sp != "" {
			st.Session.CurrentSpeaker = sp
		}
		return st

	case EventSystem:
		st.Session.Messages = append(cloneMessages(st.Session.Messages), Message{
			Type:    MessageSystem,
			Content: ev.Content,
			Data:    ev.Data,
		})
		return st

	case EventHedera:
		return reduceHedera(st, ev)

	case EventError:
		st.Session.Messages = append(cloneMessages(st.Session.Messages), Message{
			Type:    MessageError,
			Content: ev.Content,
		})
		st.Session.Status = StatusError
		return st

	case EventDone:
		if st.Session.Status != StatusError {
			st.Session.Status = StatusCompleted
		}
		st.Session.CurrentSpeaker = ""
		st.Buffers.Bull.Text = ""
		st.Buffers.Bear.Text = ""
		st.Buffers.Referee.Text = ""
		return st
	}

	// Unknown event kinds are dropped, same as malformed frames.
	return st
}

// reduceToken appends the token to the speaker's accumulator and mirrors
// the accumulated text into the open message for (speaker, round),
// creating it at the end of the transcript if this is the turn's first
// token. The transcript position of an existing open message is preserved.
func reduceToken(st State, ev Event) State {
	sp := ev.Speaker()
	buf := st.Buffers.of(sp)
	buf.Text += ev.Token

	r := buf.Round
	if ev.Round != nil {
		r = *ev.Round
		buf.Round = r
	}

	mt := sp.MessageType()
	msgs := cloneMessages(st.Session.Messages)
	if i := findOpen(msgs, mt, r); i >= 0 {
		msgs[i].Content = buf.Text
	} else {
		msgs = append(msgs, Message{Type: mt, Content: buf.Text, Round: r})
	}

	st.Session.Messages = msgs
	st.Session.CurrentSpeaker = sp
	return st
}

// reduceComplete finalizes the speaker's turn. The final text is the
// event's content when supplied, otherwise whatever the accumulator holds.
// A repeated complete for the same (speaker, round) overwrites the
// finalized message rather than duplicating it.
func reduceComplete(st State, ev Event) State {
	sp := ev.Speaker()
	mt := sp.MessageType()
	buf := st.Buffers.of(sp)

	r := buf.Round
	if ev.Round != nil {
		r = *ev.Round
		buf.Round = r
	}

	final := ev.Content
	if final == "" {
		final = buf.Text
	}
	buf.Text = ""

	msg := Message{Type: mt, Content: final, Round: r}
	switch sp {
	case SpeakerBull, SpeakerBear:
		msg.Confidence = ev.Confidence
		msg.KeyPoints = ev.KeyPoints
	case SpeakerReferee:
		msg.Winner = ev.Winner
		msg.ConfidenceScore = ev.ConfidenceScore
		msg.WagerAmount = ev.WagerAmount
		msg.KeyFactors = ev.KeyFactors
	}

	msgs := cloneMessages(st.Session.Messages)
	if i := findOpen(msgs, mt, r); i >= 0 {
		msgs[i] = msg
	} else if i := findAny(msgs, mt, r); i >= 0 {
		msgs[i] = msg
	} else {
		msgs = append(msgs, msg)
	}
	st.Session.Messages = msgs

	// Bear closes the round in the bull -> bear -> referee cycle; this is
	// the only event that advances the shared counter. Re-base every
	// accumulator so round-less tokens land in the new round.
	if sp == SpeakerBear {
		st.Round++
		st.Buffers.Bull.Round = st.Round
		st.Buffers.Bear.Round = st.Round
		st.Buffers.Referee.Round = st.Round
	}

	if sp == SpeakerReferee {
		sum := cloneSummary(st.Session.Summary)
		sum.Winner = ev.Winner
		sum.ConfidenceScore = ev.ConfidenceScore
		sum.WagerAmount = ev.WagerAmount
		st.Session.Summary = sum
	}

	st.Session.CurrentSpeaker = ""
	return st
}

// reduceHedera appends the ledger message verbatim and projects its
// transaction references into the summary.
func reduceHedera(st State, ev Event) State {
	st.Session.Messages = append(cloneMessages(st.Session.Messages), Message{
		Type:    MessageHedera,
		Content: ev.Content,
		HCSTx:   ev.HCSTx,
		WagerTx: ev.WagerTx,
	})

	sum := cloneSummary(st.Session.Summary)
	if ev.HCSTx != nil {
		sum.HCSTx = ev.HCSTx
	}
	if ev.WagerTx != nil {
		sum.WagerTx = ev.WagerTx
	}
	st.Session.Summary = sum

	return st
}

// findOpen locates the single not-yet-finalized message for the given
// (type, round), newest first. Finalized messages can never match, so a
// late token after finalization starts a fresh message.
func findOpen(msgs []Message, mt MessageType, round int) int {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Type == mt && msgs[i].Round == round && !msgs[i].Final() {
			return i
		}
	}
	return -1
}

// findAny locates the newest message for (type, round) regardless of
// finality. Used only to keep repeated complete events idempotent.
func findAny(msgs []Message, mt MessageType, round int) int {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Type == mt && msgs[i].Round == round {
			return i
		}
	}
	return -1
}

// cloneMessages copies the transcript so published snapshots stay frozen.
// Capacity is padded for the common append-one case.
func cloneMessages(msgs []Message) []Message {
	out := make([]Message, len(msgs), len(msgs)+1)
	copy(out, msgs)
	return out
}

func cloneSummary(s *Summary) *Summary {
	if s == nil {
		return &Summary{}
	}
	c := *s
	return &c
}
