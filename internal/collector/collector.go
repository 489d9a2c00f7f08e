package collector

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	apperrors "github.com/agbru/gradecalc/internal/errors"
	"github.com/agbru/gradecalc/internal/grades"
	"github.com/agbru/gradecalc/internal/logging"
	"github.com/agbru/gradecalc/internal/metrics"
	"github.com/agbru/gradecalc/internal/ui"
)

// Collector runs the subject → grade → continue conversation over a
// line-oriented reader and writer.
type Collector struct {
	in      *bufio.Reader
	out     io.Writer
	logger  logging.Logger
	metrics *metrics.Session
	state   State
}

// Option configures a Collector.
type Option func(*Collector)

// WithLogger sets the logger used for rejected and accepted input.
func WithLogger(l logging.Logger) Option {
	return func(c *Collector) { c.logger = l }
}

// WithMetrics sets the session that counts entries and rejections.
func WithMetrics(m *metrics.Session) Option {
	return func(c *Collector) { c.metrics = m }
}

// New creates a Collector reading from in and prompting on out.
func New(in io.Reader, out io.Writer, opts ...Option) *Collector {
	c := &Collector{
		in:     bufio.NewReader(in),
		out:    out,
		logger: logging.Nop(),
		state:  AwaitingSubject,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current position in the conversation.
func (c *Collector) State() State {
	return c.state
}

// Collect runs the conversation until the continue prompt is answered
// negatively and returns the entries in the order they were typed. At least
// one entry is collected. When the input ends early, the entries completed
// so far are returned together with an error wrapping
// apperrors.ErrInputClosed.
func (c *Collector) Collect(ctx context.Context) (grades.Entries, error) {
	var entries grades.Entries
	c.state = AwaitingSubject

	fmt.Fprintf(c.out, "\n%s\n", ui.Paint(ui.ColorTitle(), SectionHeading))
	for {
		subject, err := c.ReadSubjectName(ctx)
		if err != nil {
			return entries, err
		}
		c.state = c.state.Advance(true)

		grade, err := c.ReadGrade(ctx)
		if err != nil {
			return entries, err
		}
		c.state = c.state.Advance(true)

		entry := grades.Entry{Subject: subject, Grade: grade}
		entries = append(entries, entry)
		c.metrics.ObserveEntry(entry)
		c.logger.Debug("entry accepted",
			logging.String("subject", subject),
			logging.Float64("grade", grade),
			logging.Int("entries", len(entries)))

		more, err := c.ReadContinue(ctx)
		if err != nil {
			return entries, err
		}
		c.state = c.state.Advance(more)
		if c.state == Done {
			return entries, nil
		}
	}
}

// ReadSubjectName prompts until a non-blank subject name is typed.
func (c *Collector) ReadSubjectName(ctx context.Context) (string, error) {
	return prompt(ctx, c, PromptSubject, ParseSubject)
}

// ReadGrade prompts until a number within the grade range is typed.
func (c *Collector) ReadGrade(ctx context.Context) (float64, error) {
	return prompt(ctx, c, PromptGrade, ParseGrade)
}

// ReadContinue prompts until a yes or no answer is typed.
func (c *Collector) ReadContinue(ctx context.Context) (bool, error) {
	return prompt(ctx, c, PromptContinue, ParseContinue)
}

// prompt asks question until parse accepts the answer.
func prompt[T any](ctx context.Context, c *Collector, question string, parse func(string) (T, error)) (T, error) {
	var zero T
	for {
		line, err := c.readLine(ctx, question)
		if err != nil {
			return zero, err
		}
		value, err := parse(line)
		if err == nil {
			return value, nil
		}
		c.reject(err)
	}
}

func (c *Collector) reject(err error) {
	var validationErr apperrors.ValidationError
	if errors.As(err, &validationErr) {
		c.metrics.ObserveRejection(validationErr.Field, validationErr.Reason())
		c.logger.Debug("input rejected",
			logging.String("field", validationErr.Field),
			logging.String("reason", validationErr.Reason()),
			logging.String("state", c.state.String()))
	}
	fmt.Fprintln(c.out, ui.Paint(ui.ColorWarning(), userMessage(err)))
}

// readLine prints question and returns the next line without its line
// terminator. A final line without a newline is still returned; after that
// the stream reports apperrors.ErrInputClosed.
func (c *Collector) readLine(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", apperrors.WrapError(err, "collecting entries")
	}
	fmt.Fprint(c.out, question)

	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line != "" {
				return strings.TrimRight(line, "\r\n"), nil
			}
			c.logger.Warn("input closed", logging.String("state", c.state.String()))
			fmt.Fprintln(c.out)
			return "", apperrors.WrapError(apperrors.ErrInputClosed, "collecting entries in state %s", c.state)
		}
		return "", apperrors.WrapError(err, "reading input")
	}
	return strings.TrimRight(line, "\r\n"), nil
}
