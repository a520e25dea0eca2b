package publisher

import (
	"encoding/json"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/specialistvlad/nodesim/internal/addressspace"
	"github.com/specialistvlad/nodesim/internal/config"
)

// DefaultSubjectPrefix is used when no prefix is configured.
const DefaultSubjectPrefix = "nodesim.values"

// Conn is the subset of *nats.Conn the publisher uses.
type Conn interface {
	Publish(subj string, data []byte) error
}

// Source is the change feed the publisher attaches to. *addressspace.Space
// implements it.
type Source interface {
	Subscribe(fn func(addressspace.Change)) (unsubscribe func())
}

var _ Source = (*addressspace.Space)(nil)

// Message is the JSON payload of one published change.
type Message struct {
	NodeID    string       `json:"node_id"`
	Namespace uint16       `json:"namespace"`
	Name      string       `json:"name"`
	Value     config.Value `json:"value"`
	Timestamp time.Time    `json:"timestamp"`
}

// Stats are the publisher's counters.
type Stats struct {
	Published uint64 `json:"published"`
	Failures  uint64 `json:"failures"`
}

// Publisher publishes address-space changes to NATS.
type Publisher struct {
	conn   Conn
	prefix string
	logger *slog.Logger

	published atomic.Uint64
	failures  atomic.Uint64
}

// New creates a publisher. An empty prefix selects DefaultSubjectPrefix.
func New(conn Conn, prefix string, logger *slog.Logger) *Publisher {
	prefix = strings.Trim(prefix, ".")
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Publisher{conn: conn, prefix: prefix, logger: logger}
}

// Attach subscribes the publisher to src and returns the function that
// detaches it.
func (p *Publisher) Attach(src Source) (detach func()) {
	return src.Subscribe(p.Handle)
}

// Prefix returns the subject prefix in use.
func (p *Publisher) Prefix() string {
	return p.prefix
}

// Subject returns the subject a change of the given node is published on.
func (p *Publisher) Subject(namespace uint16, nodeID string) string {
	return p.prefix + "." + strconv.FormatUint(uint64(namespace), 10) + "." + sanitizeToken(nodeID)
}

// Handle publishes one change.
func (p *Publisher) Handle(c addressspace.Change) {
	data, err := json.Marshal(Message{
		NodeID:    c.NodeID,
		Namespace: c.Namespace,
		Name:      c.Name,
		Value:     c.Value,
		Timestamp: c.Timestamp,
	})
	if err == nil {
		err = p.conn.Publish(p.Subject(c.Namespace, c.NodeID), data)
	}
	if err != nil {
		// Only the first failure and every thousandth after it are logged.
		if n := p.failures.Add(1); n == 1 || n%1000 == 0 {
			p.logger.Error("Failed to publish value change.", "node_id", c.NodeID, "failures", n, "error", err)
		}
		return
	}
	p.published.Add(1)
}

// Stats returns a snapshot of the counters.
func (p *Publisher) Stats() Stats {
	return Stats{Published: p.published.Load(), Failures: p.failures.Load()}
}

// sanitizeToken replaces characters that cannot appear inside a NATS subject
// token.
func sanitizeToken(s string) string {
	if s == "" {
		return "_"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '*', '>', ' ', '\t', '\r', '\n':
			return '_'
		default:
			return r
		}
	}, s)
}
