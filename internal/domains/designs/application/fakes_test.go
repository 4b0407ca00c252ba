package application

import (
	"context"
	"sort"
	"sync"

	"github.com/Apurer/garment-studio/internal/domains/designs/domain"
	"github.com/Apurer/garment-studio/internal/domains/designs/ports"
)

type fakeGenerator struct {
	mu      sync.Mutex
	calls   []domain.GenerationRequest
	result  *ports.GenerationResult
	err     error
	started chan struct{}
	release chan struct{}
}

func (f *fakeGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (*ports.GenerationResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.result, f.err
}

func (f *fakeGenerator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeDesignRepo struct {
	mu      sync.Mutex
	designs map[string]*domain.SavedDesign
	inserts int
	err     error
}

func newFakeDesignRepo() *fakeDesignRepo {
	return &fakeDesignRepo{designs: map[string]*domain.SavedDesign{}}
}

func (f *fakeDesignRepo) Insert(_ context.Context, design *domain.SavedDesign) (*domain.SavedDesign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.inserts++
	f.designs[design.ID] = design.Clone()
	return design.Clone(), nil
}

func (f *fakeDesignRepo) GetByID(_ context.Context, id string) (*domain.SavedDesign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if d, ok := f.designs[id]; ok {
		return d.Clone(), nil
	}
	return nil, ports.ErrNotFound
}

func (f *fakeDesignRepo) ListByOwner(_ context.Context, ownerID string, audience domain.Audience) ([]*domain.SavedDesign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []*domain.SavedDesign
	for _, d := range f.designs {
		if d.OwnerID == ownerID && d.OfferedTo(audience) {
			list = append(list, d.Clone())
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].GeneratedAt.After(list[j].GeneratedAt) })
	return list, nil
}

type staticIdentity struct {
	identity *ports.Identity
}

func (s staticIdentity) CurrentUser(context.Context) (*ports.Identity, bool) {
	return s.identity, s.identity != nil
}

type fakeUploads struct {
	owners []string
}

func (f *fakeUploads) Put(_ context.Context, ownerID, filename, _ string, _ []byte) (string, error) {
	f.owners = append(f.owners, ownerID)
	return "https://uploads.example.com/" + ownerID + "/" + filename, nil
}
