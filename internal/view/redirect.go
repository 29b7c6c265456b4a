package view

import (
	"fmt"
	"math"
	"time"
)

// Redirect is a delayed navigation rendered as a meta refresh. The browser
// follows it once per page load.
type Redirect struct {
	URL     string
	Seconds int
}

// Content is the value of the refresh meta tag.
func (r Redirect) Content() string {
	return fmt.Sprintf("%d;url=%s", r.Seconds, r.URL)
}

// NotFoundPage is the Data of the not-found template.
type NotFoundPage struct {
	Message string
	Parent  string
}

// NotFoundRedirect is the policy shared by all detail pages: when the
// primary record is missing, show the message and send the user back to
// the parent listing after Delay.
type NotFoundRedirect struct {
	Delay time.Duration
}

// DefaultNotFoundDelay gives the user time to read the message.
const DefaultNotFoundDelay = 3 * time.Second

// Apply turns data into the not-found page pointing at parent.
func (p NotFoundRedirect) Apply(data *TemplateData, message, parent string) {
	delay := p.Delay
	if delay <= 0 {
		delay = DefaultNotFoundDelay
	}
	data.Title = "Not found"
	data.Data = NotFoundPage{Message: message, Parent: parent}
	data.Redirect = &Redirect{URL: parent, Seconds: int(math.Ceil(delay.Seconds()))}
}
