package shared

import (
	"encoding/json"
	"net/url"
)

const formEchoPrefix = "form:"

// FormEcho carries a rejected form submission across the redirect back to
// the page that shows the form.
type FormEcho struct {
	Values url.Values        `json:"values"`
	Errors map[string]string `json:"errors"`
}

// StashForm keeps echo for the next request that asks for key.
func (s *Session) StashForm(key string, echo FormEcho) {
	data, err := json.Marshal(echo)
	if err != nil {
		return
	}
	s.Set(formEchoPrefix+key, string(data))
}

// PopForm returns and forgets the echo stored under key.
func (s *Session) PopForm(key string) (FormEcho, bool) {
	if s == nil {
		return FormEcho{}, false
	}
	raw := s.Get(formEchoPrefix + key)
	if raw == "" {
		return FormEcho{}, false
	}
	s.Delete(formEchoPrefix + key)
	var echo FormEcho
	if err := json.Unmarshal([]byte(raw), &echo); err != nil {
		return FormEcho{}, false
	}
	return echo, true
}
