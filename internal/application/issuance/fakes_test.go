package issuance_test

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/Documentos-api/internal/application/issuance"
	"github.com/jhoicas/Documentos-api/internal/domain"
	"github.com/jhoicas/Documentos-api/internal/domain/archive"
	"github.com/jhoicas/Documentos-api/internal/domain/entity"
	"github.com/jhoicas/Documentos-api/internal/domain/repository"
)

type fakeDocs struct {
	mu           sync.Mutex
	docs         map[string]*entity.Document
	statusCalls  int
	lockCalls    int
	statusErr    error
	lockErr      error
	lastLockPath string
	// afterGet modifica lo almacenado tras cada lectura (otra petición que escribe en medio).
	afterGet func(d *entity.Document)
}

var _ repository.DocumentRepository = (*fakeDocs)(nil)

func newFakeDocs(docs ...entity.Document) *fakeDocs {
	f := &fakeDocs{docs: make(map[string]*entity.Document)}
	for _, d := range docs {
		d := d.Clone()
		f.docs[d.ID] = &d
	}
	return f
}

func (f *fakeDocs) get(id string) entity.Document {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.docs[id].Clone()
}

func (f *fakeDocs) Create(_ context.Context, d *entity.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := d.Clone()
	f.docs[d.ID] = &c
	return nil
}

func (f *fakeDocs) GetByID(_ context.Context, id string) (*entity.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.docs[id]
	if !ok {
		return nil, nil
	}
	c := d.Clone()
	if f.afterGet != nil {
		f.afterGet(d)
	}
	return &c, nil
}

func (f *fakeDocs) ListByBusiness(context.Context, string, repository.DocumentFilter, int, int) ([]*entity.Document, error) {
	return nil, errors.New("no usado")
}

func (f *fakeDocs) Update(context.Context, *entity.Document) error { return errors.New("no usado") }

func (f *fakeDocs) UpdateStatus(_ context.Context, d *entity.Document, from entity.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	if f.statusErr != nil {
		return f.statusErr
	}
	stored := f.docs[d.ID]
	if stored.Status != from {
		return domain.ErrStaleDocument
	}
	stored.Status = d.Status
	stored.IssuedAt = d.IssuedAt
	return nil
}

func (f *fakeDocs) LockAfterExport(_ context.Context, id, archivedPath string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lockCalls++
	f.lastLockPath = archivedPath
	if f.lockErr != nil {
		return 0, f.lockErr
	}
	d := f.docs[id]
	d.PDFVersion++
	d.Locked = true
	if archivedPath != "" {
		d.LockedPDFPath = archivedPath
	}
	return d.PDFVersion, nil
}

func (f *fakeDocs) NextNumber(context.Context, string, entity.DocumentType) (int64, error) {
	return 0, errors.New("no usado")
}

type fakeProfiles map[string]entity.BusinessProfile

func (f fakeProfiles) GetByID(_ context.Context, id string) (*entity.BusinessProfile, error) {
	p, ok := f[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

type fakeClients map[string]entity.Client

func (f fakeClients) GetByID(_ context.Context, id string) (*entity.Client, error) {
	c, ok := f[id]
	if !ok {
		return nil, errors.New("cliente no encontrado")
	}
	return &c, nil
}

type fakeRenderer struct {
	mu      sync.Mutex
	calls   int
	last    issuance.RenderInput
	err     error
	started chan struct{} // si no es nil, se cierra al entrar
	block   chan struct{} // si no es nil, Render espera
}

func (f *fakeRenderer) Render(_ context.Context, in issuance.RenderInput) (*issuance.Artifact, error) {
	f.mu.Lock()
	f.calls++
	f.last = in
	f.mu.Unlock()
	if f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	return &issuance.Artifact{Bytes: []byte("%PDF-1.4 fake"), Pages: 1, Checksum: "abc"}, nil
}

type fakeStorage struct {
	err   error
	paths []string
}

func (f *fakeStorage) WriteFile(_ context.Context, p archive.Path, _ []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.paths = append(f.paths, p.String())
	return p.String(), nil
}

type fakeDeliverer struct {
	err      error
	filename string
	data     []byte
}

func (f *fakeDeliverer) Deliver(_ context.Context, filename string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.filename = filename
	f.data = data
	return nil
}
