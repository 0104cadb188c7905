package application

import (
	"context"
	"sync"

	"github.com/google/uuid"

	clientDomain "github.com/grandlux-hotels/service-reservation/internal/domain/client"
	"github.com/grandlux-hotels/service-reservation/internal/domain/reservation"
	roomDomain "github.com/grandlux-hotels/service-reservation/internal/domain/room"
	"github.com/grandlux-hotels/service-reservation/pkg/domain"
	"github.com/grandlux-hotels/service-reservation/pkg/kafka"
)

// fakeReservationRepo is an in-memory reservation repository. It is
// mutex-protected so the concurrency tests exercise real interleavings.
type fakeReservationRepo struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*reservation.Reservation
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{items: make(map[uuid.UUID]*reservation.Reservation)}
}

func (f *fakeReservationRepo) FindByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	res, ok := f.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("Reservation", id.String())
	}
	return res, nil
}

func (f *fakeReservationRepo) FindAll(_ context.Context) ([]*reservation.Reservation, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]*reservation.Reservation, 0, len(f.items))
	for _, res := range f.items {
		out = append(out, res)
	}
	return out, nil
}

func (f *fakeReservationRepo) FindByClientID(_ context.Context, clientID uuid.UUID) ([]*reservation.Reservation, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []*reservation.Reservation
	for _, res := range f.items {
		if res.ClientID() == clientID {
			out = append(out, res)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) FindByRoomID(_ context.Context, roomID uuid.UUID) ([]*reservation.Reservation, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []*reservation.Reservation
	for _, res := range f.items {
		if res.RoomID() == roomID {
			out = append(out, res)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) FindConflicting(_ context.Context, roomID uuid.UUID, stay reservation.Stay, excludeID uuid.UUID) ([]*reservation.Reservation, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []*reservation.Reservation
	for _, res := range f.items {
		if res.RoomID() != roomID || res.ID() == excludeID {
			continue
		}
		if res.Status() == reservation.StatusCancelled {
			continue
		}
		if stay.ConflictsWith(res.Stay()) {
			out = append(out, res)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.items[id]
	return ok, nil
}

func (f *fakeReservationRepo) Save(_ context.Context, res *reservation.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[res.ID()] = res
	return nil
}

func (f *fakeReservationRepo) Update(_ context.Context, res *reservation.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[res.ID()]; !ok {
		return domain.NewNotFoundError("Reservation", res.ID().String())
	}
	f.items[res.ID()] = res
	return nil
}

func (f *fakeReservationRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return domain.NewNotFoundError("Reservation", id.String())
	}
	delete(f.items, id)
	return nil
}

func (f *fakeReservationRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	counts := make(map[string]int64)
	for _, res := range f.items {
		counts[string(res.Status())]++
	}
	return counts, nil
}

type fakeRoomRepo struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*roomDomain.Room
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{items: make(map[uuid.UUID]*roomDomain.Room)}
}

func (f *fakeRoomRepo) FindByID(_ context.Context, id uuid.UUID) (*roomDomain.Room, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	rm, ok := f.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("Room", id.String())
	}
	return rm, nil
}

func (f *fakeRoomRepo) FindAll(_ context.Context) ([]*roomDomain.Room, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]*roomDomain.Room, 0, len(f.items))
	for _, rm := range f.items {
		out = append(out, rm)
	}
	return out, nil
}

func (f *fakeRoomRepo) Save(_ context.Context, rm *roomDomain.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[rm.ID()] = rm
	return nil
}

func (f *fakeRoomRepo) Update(_ context.Context, rm *roomDomain.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[rm.ID()]; !ok {
		return domain.NewNotFoundError("Room", rm.ID().String())
	}
	f.items[rm.ID()] = rm
	return nil
}

func (f *fakeRoomRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return domain.NewNotFoundError("Room", id.String())
	}
	delete(f.items, id)
	return nil
}

type fakeClientRepo struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*clientDomain.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{items: make(map[uuid.UUID]*clientDomain.Client)}
}

func (f *fakeClientRepo) FindByID(_ context.Context, id uuid.UUID) (*clientDomain.Client, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	cli, ok := f.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("Client", id.String())
	}
	return cli, nil
}

func (f *fakeClientRepo) FindAll(_ context.Context) ([]*clientDomain.Client, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]*clientDomain.Client, 0, len(f.items))
	for _, cli := range f.items {
		out = append(out, cli)
	}
	return out, nil
}

func (f *fakeClientRepo) Save(_ context.Context, cli *clientDomain.Client) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[cli.ID()] = cli
	return nil
}

func (f *fakeClientRepo) Update(_ context.Context, cli *clientDomain.Client) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[cli.ID()]; !ok {
		return domain.NewNotFoundError("Client", cli.ID().String())
	}
	f.items[cli.ID()] = cli
	return nil
}

func (f *fakeClientRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return domain.NewNotFoundError("Client", id.String())
	}
	delete(f.items, id)
	return nil
}

// capturingPublisher records published events for assertions.
type capturingPublisher struct {
	mu     sync.Mutex
	events []kafka.CloudEvent
}

func (p *capturingPublisher) PublishEvent(_ context.Context, _ string, _ string, event kafka.CloudEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *capturingPublisher) eventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}
