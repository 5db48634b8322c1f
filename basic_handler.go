/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package verrors

import (
	"context"
	"log/slog"
)

// BasicHandler collects errors into a nested report that follows the structure of the
// validated document. Every field maps to its messages and, if there are any, the
// report of its sub-fields.
//
// The children of group errors are reported at their own paths below the group.
// The children of logic errors are reported below an extra node per alternative
// definition, e.g. "anyof definition 0".
//
// A BasicHandler is not safe for concurrent use.
type BasicHandler struct {
	catalog *Catalog
	logger  *slog.Logger
	root    *ReportNode
}

var _ interface {
	ErrorHandler
	Emitter
	Starter
	Ender
	Iterator
} = (*BasicHandler)(nil)

// NewBasicHandler creates a handler with the default messages.
func NewBasicHandler(opts ...HandlerOption) *BasicHandler {
	options := makeHandlerOptions(handlerOptions{}, opts...)
	return &BasicHandler{
		catalog: options.catalog,
		logger:  options.logger,
		root:    NewReportNode(),
	}
}

// NewSchemaHandler creates a handler for errors found in schemas. It differs from the basic
// handler only in its messages: unknown fields are reported as unknown rules.
func NewSchemaHandler(opts ...HandlerOption) *BasicHandler {
	options := makeHandlerOptions(handlerOptions{catalog: SchemaCatalog()}, opts...)
	return &BasicHandler{
		catalog: options.catalog,
		logger:  options.logger,
		root:    NewReportNode(),
	}
}

// Catalog returns the messages the handler formats errors with.
func (h *BasicHandler) Catalog() *Catalog {
	return h.catalog
}

// Call resets the handler, adds all errors and returns the pruned report (*ReportNode).
func (h *BasicHandler) Call(errs ErrorList) any {
	return h.Report(errs)
}

// Report is the typed variant of Call.
func (h *BasicHandler) Report(errs ErrorList) *ReportNode {
	h.Clear()
	Extend(h, errs)
	return h.Tree()
}

// Add inserts the error into the report. The error itself is not modified.
func (h *BasicHandler) Add(e *ValidationError) {
	h.insert(RewritePaths(e, 0), e)
}

// Clear drops everything that was added so far.
func (h *BasicHandler) Clear() {
	h.root = NewReportNode()
}

// Start resets the handler for a new validation run.
func (h *BasicHandler) Start(context.Context) {
	h.Clear()
}

func (h *BasicHandler) End(context.Context) {}

// Emit logs the error at debug level.
func (h *BasicHandler) Emit(e *ValidationError) {
	msg, ok := h.catalog.Message(e)
	if !ok {
		msg = e.Definition().String()
	}
	h.logger.Debug(msg,
		slog.String("document_path", e.DocumentPath.String()),
		slog.String("schema_path", e.SchemaPath.String()),
		slog.String("code", e.Code.String()),
	)
}

// Iterate is not supported: the handler keeps formatted messages only.
func (h *BasicHandler) Iterate() (ErrorList, error) {
	return nil, ErrIterationUnsupported
}

// Tree returns a pruned copy of the report: nodes without sub-fields carry their messages only,
// and nodes without any content are omitted.
func (h *BasicHandler) Tree() *ReportNode {
	return h.root.pruned()
}

// String renders the pruned report as YAML.
func (h *BasicHandler) String() string {
	return h.Tree().String()
}

// insert dispatches on the classification of rewritten. original is the same error before
// its paths were rewritten; messages use its field name.
func (h *BasicHandler) insert(rewritten, original *ValidationError) {
	switch {
	case rewritten.IsLogicError():
		h.insertLogicError(rewritten, original)
	case rewritten.IsGroupError():
		h.insertGroupError(rewritten, original)
	default:
		h.insertError(rewritten.DocumentPath, rewritten, original)
	}
}

func (h *BasicHandler) insertError(path Path, rewritten, original *ValidationError) {
	msg, ok := h.catalog.Format(rewritten, fieldOf(original))
	if !ok {
		return
	}
	insertMessage(h.root, path, msg)
}

func (h *BasicHandler) insertGroupError(rewritten, original *ValidationError) {
	h.insertError(rewritten.DocumentPath, rewritten, original)

	originals := original.ChildErrors()
	for i, child := range rewritten.ChildErrors() {
		h.insert(child, originals[i])
	}
}

func (h *BasicHandler) insertLogicError(rewritten, original *ValidationError) {
	h.insertError(rewritten.DocumentPath, rewritten, original)

	originals := original.DefinitionsErrors()
	buckets := rewritten.DefinitionsErrors()
	for pair := buckets.Oldest(); pair != nil; pair = pair.Next() {
		if len(pair.Value) == 0 {
			continue
		}
		originalBucket, _ := originals.Get(pair.Key)
		for i, child := range pair.Value {
			h.insert(child, originalBucket[i])
		}
	}
}

func fieldOf(e *ValidationError) any {
	if f, ok := e.Field(); ok {
		return f
	}
	return nil
}
