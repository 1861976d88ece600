// Package inference runs externally trained binary classifiers exported to ONNX.
package inference

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

var (
	// ErrPoolClosed is returned by Acquire after Close.
	ErrPoolClosed = errors.New("inference: pool closed")
	// ErrSessionClosed is returned by Infer after Close.
	ErrSessionClosed = errors.New("inference: session closed")
	// ErrOutputShape indicates a model output that is not one probability (or one
	// pair of class probabilities) per row.
	ErrOutputShape = errors.New("inference: unexpected output shape")
)

// Default tensor names, as written by skl2onnx with zipmap disabled.
const (
	DefaultInputName  = "float_input"
	DefaultOutputName = "probabilities"
)

var (
	ortEnvOnce sync.Once
	ortEnvErr  error
)

// initORT initializes the ONNX Runtime environment once. libraryPath only takes
// effect on the first call.
func initORT(libraryPath string) error {
	ortEnvOnce.Do(func() {
		if libraryPath != "" {
			ort.SetSharedLibraryPath(libraryPath)
		}
		ortEnvErr = ort.InitializeEnvironment()
	})
	return ortEnvErr
}

// Config describes the model to load.
type Config struct {
	ModelPath   string
	InputName   string // default DefaultInputName
	OutputName  string // default DefaultOutputName
	LibraryPath string // onnxruntime shared library; empty uses the platform default
}

func (c Config) withDefaults() Config {
	if c.InputName == "" {
		c.InputName = DefaultInputName
	}
	if c.OutputName == "" {
		c.OutputName = DefaultOutputName
	}
	return c
}

// Session wraps an ONNX Runtime session over a float32 [rows, features] input.
type Session struct {
	session *ort.DynamicAdvancedSession
	mu      sync.Mutex
	closed  bool
}

// NewSession creates a new ONNX session from cfg.
func NewSession(cfg Config) (*Session, error) {
	cfg = cfg.withDefaults()
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, fmt.Errorf("model file: %w", err)
	}

	if err := initORT(cfg.LibraryPath); err != nil {
		return nil, fmt.Errorf("initializing ONNX runtime: %w", err)
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("creating session options: %w", err)
	}
	defer func() { _ = options.Destroy() }()

	session, err := ort.NewDynamicAdvancedSession(
		cfg.ModelPath,
		[]string{cfg.InputName},
		[]string{cfg.OutputName},
		options,
	)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	return &Session{session: session}, nil
}

// Infer runs the model on a row-major [rows, features] batch and returns the
// positive-class probability of each row.
func (s *Session) Infer(ctx context.Context, data []float32, rows, features int) ([]float32, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	if rows*features != len(data) {
		return nil, fmt.Errorf("input has %d values, want %d x %d", len(data), rows, features)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSessionClosed
	}

	input, err := ort.NewTensor(ort.NewShape(int64(rows), int64(features)), data)
	if err != nil {
		return nil, fmt.Errorf("creating input tensor: %w", err)
	}
	defer func() { _ = input.Destroy() }()

	outputs := []ort.Value{nil}
	if err := s.session.Run([]ort.Value{input}, outputs); err != nil {
		return nil, fmt.Errorf("running inference: %w", err)
	}
	if outputs[0] == nil {
		return nil, fmt.Errorf("no output produced")
	}
	defer func() { _ = outputs[0].Destroy() }()

	probs, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("%w: output is %T, want float32 tensor", ErrOutputShape, outputs[0])
	}
	return positiveClass(probs.GetData(), probs.GetShape(), rows)
}

// positiveClass extracts one probability per row from a [rows], [rows, 1] or
// [rows, 2] output. For two columns the second is the positive class.
func positiveClass(data []float32, shape ort.Shape, rows int) ([]float32, error) {
	cols := int64(1)
	switch len(shape) {
	case 1:
	case 2:
		cols = shape[1]
	default:
		return nil, fmt.Errorf("%w: %v", ErrOutputShape, shape)
	}
	if shape[0] != int64(rows) || (cols != 1 && cols != 2) || int64(len(data)) != shape[0]*cols {
		return nil, fmt.Errorf("%w: %v for %d rows", ErrOutputShape, shape, rows)
	}

	out := make([]float32, rows)
	for i := range out {
		out[i] = data[int64(i)*cols+cols-1]
	}
	return out, nil
}

// Close releases ONNX resources.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	if s.session != nil {
		return s.session.Destroy()
	}
	return nil
}
