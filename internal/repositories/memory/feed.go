package memory

import (
	"context"

	"github.com/SscSPs/dealership_ledger/internal/core/domain"
)

type subscriber struct {
	push  func(st *state)
	close func()
}

func (s *Store) SubscribeTransactions(ctx context.Context, filter domain.TransactionFilter) (<-chan []domain.PersonTransaction, error) {
	ch := make(chan []domain.PersonTransaction, 1)
	s.subscribe(ctx, subscriber{
		push:  func(st *state) { offer(ch, st.listTransactions(filter)) },
		close: func() { close(ch) },
	})
	return ch, nil
}

func (s *Store) SubscribeSales(ctx context.Context, filter domain.SaleFilter) (<-chan []domain.VehicleSale, error) {
	ch := make(chan []domain.VehicleSale, 1)
	s.subscribe(ctx, subscriber{
		push:  func(st *state) { offer(ch, st.listSales(filter)) },
		close: func() { close(ch) },
	})
	return ch, nil
}

func (s *Store) subscribe(ctx context.Context, sub subscriber) {
	s.subsMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = sub
	sub.push(s.snapshot())
	s.subsMu.Unlock()

	go func() {
		<-ctx.Done()
		s.subsMu.Lock()
		delete(s.subs, id)
		sub.close()
		s.subsMu.Unlock()
	}()
}

func (s *Store) publish(st *state) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, sub := range s.subs {
		sub.push(st)
	}
}

// offer replaces any undelivered snapshot with v. Never blocks.
func offer[T any](ch chan []T, v []T) {
	select {
	case ch <- v:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- v:
	default:
	}
}
