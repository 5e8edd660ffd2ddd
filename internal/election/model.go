package election

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Chart keys of the three tickets in the quick count payload, in ballot order.
var candidateKeys = [3]string{"100025", "100026", "100027"}

// Progress reports how many tally stations have sent their numbers.
type Progress struct {
	Reporting int64
	Total     int64
}

// QuickCount is a validated quick count snapshot.
type QuickCount struct {
	Timestamp string
	Votes     [3]int64
	// Percent is the upstream progress percentage, kept as the literal it was sent as.
	Percent  json.Number
	Progress Progress
}

// Total is the sum of all votes counted so far.
func (q QuickCount) Total() int64 {
	return q.Votes[0] + q.Votes[1] + q.Votes[2]
}

// Candidate is one entry of the candidate list.
type Candidate struct {
	Name       string
	Position   string
	FullName   string
	BirthPlace string
	BirthDate  string
	Age        string
	Career     []string
}

type quickCountWire struct {
	TS       *string                    `json:"ts"`
	Chart    map[string]json.RawMessage `json:"chart"`
	Progress *struct {
		Total    *int64 `json:"total"`
		Progress *int64 `json:"progres"`
	} `json:"progres"`
}

func (w quickCountWire) validate() (QuickCount, error) {
	var qc QuickCount
	if w.TS == nil {
		return qc, missingKey("ts")
	}
	qc.Timestamp = *w.TS

	if w.Chart == nil {
		return qc, missingKey("chart")
	}
	for i, key := range candidateKeys {
		raw, err := w.chartNumber(key)
		if err != nil {
			return qc, err
		}
		n, err := raw.Int64()
		if err != nil {
			return qc, fmt.Errorf("chart.%s: %w", key, err)
		}
		if n < 0 {
			return qc, fmt.Errorf("chart.%s: negative vote count %d", key, n)
		}
		qc.Votes[i] = n
	}
	persen, err := w.chartNumber("persen")
	if err != nil {
		return qc, err
	}
	qc.Percent = persen

	if w.Progress == nil {
		return qc, missingKey("progres")
	}
	if w.Progress.Total == nil {
		return qc, missingKey("progres.total")
	}
	if w.Progress.Progress == nil {
		return qc, missingKey("progres.progres")
	}
	qc.Progress = Progress{Reporting: *w.Progress.Progress, Total: *w.Progress.Total}
	return qc, nil
}

// chartNumber decodes one chart entry. Other chart entries are never looked at.
func (w quickCountWire) chartNumber(key string) (json.Number, error) {
	raw, ok := w.Chart[key]
	if !ok || len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", missingKey("chart." + key)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("chart.%s: %w", key, err)
	}
	if n == "" {
		return "", missingKey("chart." + key)
	}
	return n, nil
}

// flexText accepts a JSON string or number and keeps its text.
type flexText string

func (t *flexText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("expected string or number, got null")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = flexText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number: %w", err)
	}
	*t = flexText(n.String())
	return nil
}

type candidateWire struct {
	Name      *string `json:"name"`
	Position  *string `json:"position"`
	FullName  *string `json:"full_name"`
	BirthInfo *struct {
		Place *string `json:"place"`
		Date  *string `json:"date"`
	} `json:"birth_info"`
	Age    *flexText `json:"age"`
	Career *[]string `json:"career"`
}

type candidatesWire struct {
	Candidates *[]candidateWire `json:"candidates"`
}

func (w candidatesWire) validate() ([]Candidate, error) {
	if w.Candidates == nil {
		return nil, missingKey("candidates")
	}
	out := make([]Candidate, 0, len(*w.Candidates))
	for i, cw := range *w.Candidates {
		c, err := cw.validate()
		if err != nil {
			return nil, fmt.Errorf("candidates[%d]: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func (w candidateWire) validate() (Candidate, error) {
	required := []struct {
		key string
		val *string
	}{
		{"name", w.Name},
		{"position", w.Position},
		{"full_name", w.FullName},
	}
	for _, r := range required {
		if r.val == nil {
			return Candidate{}, missingKey(r.key)
		}
	}
	if w.BirthInfo == nil {
		return Candidate{}, missingKey("birth_info")
	}
	if w.BirthInfo.Place == nil {
		return Candidate{}, missingKey("birth_info.place")
	}
	if w.BirthInfo.Date == nil {
		return Candidate{}, missingKey("birth_info.date")
	}
	if w.Age == nil {
		return Candidate{}, missingKey("age")
	}
	if w.Career == nil {
		return Candidate{}, missingKey("career")
	}
	return Candidate{
		Name:       *w.Name,
		Position:   *w.Position,
		FullName:   *w.FullName,
		BirthPlace: *w.BirthInfo.Place,
		BirthDate:  *w.BirthInfo.Date,
		Age:        string(*w.Age),
		Career:     append([]string(nil), (*w.Career)...),
	}, nil
}

// ParseQuickCount decodes and validates a quick count document.
func ParseQuickCount(data []byte) (QuickCount, error) {
	var w quickCountWire
	if err := json.Unmarshal(data, &w); err != nil {
		return QuickCount{}, err
	}
	return w.validate()
}

// ParseCandidates decodes and validates a candidate list document.
func ParseCandidates(data []byte) ([]Candidate, error) {
	var w candidatesWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	return w.validate()
}

// FormatPercent renders the upstream percentage without reformatting it.
func (q QuickCount) FormatPercent() string {
	if q.Percent == "" {
		return "0"
	}
	if _, err := strconv.ParseFloat(string(q.Percent), 64); err != nil {
		return "0"
	}
	return string(q.Percent)
}
