package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/alkime/knobs/internal/knob"
	"github.com/gin-gonic/gin"
	"github.com/zoobzio/capitan"
)

// eventBuffer is the per-client backlog of change events. Slow clients drop
// events past it rather than stall the knob.
const eventBuffer = 32

type pointerRequest struct {
	Type    string  `json:"type" binding:"required"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Buttons uint8   `json:"buttons"`
}

func (s *Server) handleListKnobs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"knobs": s.board.States()})
}

func (s *Server) handleGetKnob(c *gin.Context) {
	state, err := s.board.State(c.Param("name"))
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// handleSetValue takes {"value": <anything>}. Values that are not finite
// numbers fall back to the knob's default.
func (s *Server) handleSetValue(c *gin.Context) {
	name := c.Param("name")

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	raw, ok := body["value"]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing value"})
		return
	}

	state, changed, err := s.board.Set(name, raw)
	if errors.Is(err, ErrDragging) {
		capitan.Emit(c.Request.Context(), KnobSetRejected, KeyKnob.Field(name))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "knob": state})

		return
	}

	if err != nil {
		s.fail(c, err)
		return
	}

	if changed {
		capitan.Emit(c.Request.Context(), KnobValueChanged,
			KeyKnob.Field(name),
			KeyReadout.Field(state.Readout),
			KeySource.Field(knob.SourceHost.String()),
		)
	}

	c.JSON(http.StatusOK, state)
}

// handlePointer feeds one pointer event in face pixel coordinates.
func (s *Server) handlePointer(c *gin.Context) {
	name := c.Param("name")

	var req pointerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pointer event"})
		return
	}

	kind, ok := knob.ParseEventKind(req.Type)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown pointer event type " + req.Type})
		return
	}

	before, state, changed, err := s.board.Pointer(name, knob.PointerEvent{
		Kind:    kind,
		Pos:     knob.Point{X: req.X, Y: req.Y},
		Buttons: req.Buttons,
	})
	if err != nil {
		s.fail(c, err)
		return
	}

	ctx := c.Request.Context()
	dragging := state.State == knob.Dragging.String()

	switch {
	case before == knob.Idle && dragging:
		capitan.Emit(ctx, KnobDragStarted, KeyKnob.Field(name))
	case before == knob.Dragging && !dragging:
		capitan.Emit(ctx, KnobDragEnded, KeyKnob.Field(name))
	}

	if changed {
		capitan.Emit(ctx, KnobValueChanged,
			KeyKnob.Field(name),
			KeyReadout.Field(state.Readout),
			KeySource.Field(knob.SourcePointer.String()),
		)
	}

	c.JSON(http.StatusOK, gin.H{"changed": changed, "knob": state})
}

func (s *Server) handleFace(c *gin.Context) {
	data, err := s.board.FacePNG(c.Param("name"))
	if err != nil {
		s.fail(c, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", data)
}

// handleEvents streams server-sent events: one "state" event with the current
// knob state, then a "change" event per value change.
func (s *Server) handleEvents(c *gin.Context) {
	name := c.Param("name")

	changes, unsubscribe, err := s.board.Subscribe(name, eventBuffer)
	if err != nil {
		s.fail(c, err)
		return
	}
	defer unsubscribe()

	state, err := s.board.State(name)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.SSEvent("state", state)
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(_ io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case ev, ok := <-changes:
			if !ok {
				return false
			}

			c.SSEvent("change", ev)

			return true
		}
	})
}

func (s *Server) fail(c *gin.Context, err error) {
	if errors.Is(err, ErrUnknownKnob) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	s.logger.Error("Request failed", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
