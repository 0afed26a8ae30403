package form

import (
	"sort"
	"strconv"
	"strings"
)

// Sentinels carried in place of a value by wizard buttons.
const (
	WriteTextSentinel = "!WMVS!"
	AdvanceSentinel   = "!NS!"
	NullSentinel      = "!GNV!"
	PageSentinel      = "!PG!"
)

type SignalKind int

const (
	// SignalNone means no value arrived; the field is (re)shown.
	SignalNone SignalKind = iota
	SignalValue
	SignalWriteText
	SignalAdvance
	SignalNull
	SignalPage
)

// Signal is one classified wizard input.
type Signal struct {
	Kind  SignalKind
	Value string
	Page  int

	// Typed is set when the value is free text rather than a button payload.
	Typed bool
}

// Classify turns a button payload into a signal. Sentinels are only
// recognized in button payloads.
func Classify(payload string, present bool) Signal {
	if !present {
		return Signal{Kind: SignalNone}
	}
	switch payload {
	case WriteTextSentinel:
		return Signal{Kind: SignalWriteText}
	case AdvanceSentinel:
		return Signal{Kind: SignalAdvance}
	case NullSentinel:
		return Signal{Kind: SignalNull}
	}
	if strings.HasPrefix(payload, PageSentinel) {
		if page, err := strconv.Atoi(strings.TrimPrefix(payload, PageSentinel)); err == nil {
			return Signal{Kind: SignalPage, Page: page}
		}
	}
	return Signal{Kind: SignalValue, Value: payload}
}

// Typed wraps free text the participant sent as a field value.
func Typed(text string) Signal {
	return Signal{Kind: SignalValue, Value: text, Typed: true}
}

// PageToken is the payload of a choice page button.
func PageToken(page int) string {
	return PageSentinel + strconv.Itoa(page)
}

// Reconcile merges the values chosen this turn into the stored selection.
// When they overlap, the overlap is toggled off; otherwise the new values
// are added. An empty incoming set clears the selection. The result is
// sorted so that equal selections compare equal.
func Reconcile(stored, incoming []string) []string {
	have := make(map[string]bool, len(stored))
	for _, v := range stored {
		have[v] = true
	}
	in := make(map[string]bool, len(incoming))
	overlap := false
	for _, v := range incoming {
		in[v] = true
		if have[v] {
			overlap = true
		}
	}

	result := map[string]bool{}
	switch {
	case overlap:
		for v := range have {
			if !in[v] {
				result[v] = true
			}
		}
	case len(in) > 0:
		for v := range have {
			result[v] = true
		}
		for v := range in {
			result[v] = true
		}
	}

	out := make([]string, 0, len(result))
	for v := range result {
		out = append(out, v)
	}
	sortIDs(out)
	return out
}

// sortIDs orders numeric ids numerically and everything else lexically.
func sortIDs(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		a, errA := strconv.ParseInt(ids[i], 10, 64)
		b, errB := strconv.ParseInt(ids[j], 10, 64)
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		}
		return ids[i] < ids[j]
	})
}
