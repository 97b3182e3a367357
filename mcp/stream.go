package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const streamDataPrefix = "data:"

// decodeBody decodes a gateway response body into the result matching id.
//
// The body is either a single JSON envelope (Content-Type: application/json)
// or a line-oriented event stream where each "data:" line independently
// carries one envelope. Malformed stream lines are skipped. An envelope
// carrying an explicit error object is fatal no matter which id it belongs
// to. When the stream runs out without a matching envelope, the outcome
// depends on optimistic: the handshake treats that as success, operation
// calls get ErrNoMatchingResponse.
func decodeBody(body io.Reader, contentType string, id int64, optimistic bool, log *slog.Logger) (json.RawMessage, error) {
	if strings.HasPrefix(contentType, "text/event-stream") {
		return decodeStream(body, id, optimistic, log)
	}
	return decodeSingle(body, id, optimistic)
}

func decodeSingle(body io.Reader, id int64, optimistic bool) (json.RawMessage, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if env.Error != nil {
		return nil, &ProtocolError{Code: env.Error.Code, Message: env.Error.Message}
	}
	if !env.Matches(id) {
		if optimistic {
			return env.Result, nil
		}
		return nil, ErrNoMatchingResponse
	}
	return env.Result, nil
}

func decodeStream(body io.Reader, id int64, optimistic bool, log *slog.Logger) (json.RawMessage, error) {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, streamDataPrefix) {
			continue
		}
		payload := strings.TrimSpace(line[len(streamDataPrefix):])
		if payload == "" {
			continue
		}
		var env Envelope
		if err := json.Unmarshal([]byte(payload), &env); err != nil {
			log.Debug("skipping malformed stream line", "err", err)
			continue
		}
		if env.Error != nil {
			return nil, &ProtocolError{Code: env.Error.Code, Message: env.Error.Message}
		}
		if env.Matches(id) {
			return env.Result, nil
		}
		log.Debug("ignoring stream envelope for unrelated id")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading event stream: %w", err)
	}
	if optimistic {
		return nil, nil
	}
	return nil, ErrNoMatchingResponse
}
