package handler

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"anyfactor/internal/domain"
)

// ndjsonSink writes run events as newline-delimited JSON, flushing after
// every event so a consumer can act on progress before completion. Once a
// write fails (consumer disconnect) further events are dropped silently
// and the run is left to finish.
type ndjsonSink struct {
	w       gin.ResponseWriter
	enc     *json.Encoder
	stopped bool
}

func newNDJSONSink(w gin.ResponseWriter) *ndjsonSink {
	return &ndjsonSink{w: w, enc: json.NewEncoder(w)}
}

func (s *ndjsonSink) Progress(event domain.ProgressEvent) error {
	return s.write(event)
}

func (s *ndjsonSink) Complete(results []domain.ResultRow) error {
	return s.write(domain.CompleteEvent{Type: "complete", Results: results})
}

func (s *ndjsonSink) write(event interface{}) error {
	if s.stopped {
		return nil
	}
	if err := s.enc.Encode(event); err != nil {
		s.stopped = true
		return err
	}
	s.w.Flush()
	return nil
}
