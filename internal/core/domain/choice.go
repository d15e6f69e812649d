package domain

import (
	"sync"
	"sync/atomic"
)

// Choice is one option in a ChoiceRequest.
type Choice struct {
	ID    string
	Label string
}

// ChoiceResult is the outcome of a ChoiceRequest.
// Chosen is false when the user dismissed the request.
type ChoiceResult struct {
	Chosen bool
	Choice Choice
}

// NoneChosen returns the result of a dismissed request.
func NoneChosen() ChoiceResult {
	return ChoiceResult{}
}

// ChoiceRequest is a list of options handed to a presentation layer.
// The presentation layer performs the interaction and calls Resolve or
// Cancel. The callback fires exactly once; later calls are ignored.
type ChoiceRequest struct {
	ID      string
	Prompt  string
	Options []Choice

	once     sync.Once
	resolved atomic.Bool
	callback func(ChoiceResult)
}

// NewChoiceRequest creates a request whose callback receives the result.
func NewChoiceRequest(id, prompt string, options []Choice, callback func(ChoiceResult)) *ChoiceRequest {
	opts := make([]Choice, len(options))
	copy(opts, options)
	return &ChoiceRequest{
		ID:       id,
		Prompt:   prompt,
		Options:  opts,
		callback: callback,
	}
}

// Resolve picks the option at index. An out-of-range index resolves the
// request as dismissed. Returns false if the request was already settled.
func (r *ChoiceRequest) Resolve(index int) bool {
	if index < 0 || index >= len(r.Options) {
		return r.settle(NoneChosen())
	}
	return r.settle(ChoiceResult{Chosen: true, Choice: r.Options[index]})
}

// Cancel settles the request with no choice.
func (r *ChoiceRequest) Cancel() bool {
	return r.settle(NoneChosen())
}

// Resolved returns true once the request has been settled.
func (r *ChoiceRequest) Resolved() bool {
	return r.resolved.Load()
}

func (r *ChoiceRequest) settle(result ChoiceResult) bool {
	fired := false
	r.once.Do(func() {
		fired = true
		r.resolved.Store(true)
		if r.callback != nil {
			r.callback(result)
		}
	})
	return fired
}

// Icon is an icon reference that can be embedded in inserted rule text.
type Icon struct {
	// Name is the short key, e.g. "attack".
	Name string

	// Class is the icon font class, e.g. "fa-solid fa-hand-fist".
	Class string
}

// Markup returns the inline HTML reference for the icon.
func (i Icon) Markup() string {
	return `<i class="` + i.Class + `"></i>`
}
