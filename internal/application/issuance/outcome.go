package issuance

import "github.com/jhoicas/Documentos-api/internal/domain/entity"

// StepState resultado de un paso best-effort.
type StepState string

const (
	StepOK      StepState = "ok"
	StepSkipped StepState = "skipped"
	StepFailed  StepState = "failed"
)

// StepResult resultado explícito de un paso cuyo fallo no aborta la exportación.
type StepResult struct {
	State StepState
	Value string
	Err   error
}

func ok(v string) StepResult { return StepResult{State: StepOK, Value: v} }
func skipped() StepResult { return StepResult{State: StepSkipped} }
func failed(err error) StepResult { return StepResult{State: StepFailed, Err: err} }
func (r StepResult) Succeeded() bool { return r.State == StepOK }

// NoticeLevel nivel de la notificación mostrada al usuario.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
)

// Notice notificación no bloqueante.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

// Outcome resultado de una exportación entregada.
type Outcome struct {
	DocumentID string
	Filename   string
	Status     entity.Status

	// Version pdf_version tras el bloqueo; si el bloqueo falló, la versión previa.
	Version  int
	Pages    int
	Checksum string
	Archive  StepResult
	Lock     StepResult
	Notices  []Notice
}

func (o *Outcome) notify(level NoticeLevel, msg string) {
	o.Notices = append(o.Notices, Notice{Level: level, Message: msg})
}
