package search

import (
	"sync"
	"time"
)

// Debouncer откладывает вызов до паузы во вводе.
// Каждый новый Trigger сбрасывает таймер, срабатывает только последний.
type Debouncer struct {
	timer   *time.Timer
	wg      sync.WaitGroup
	delay   time.Duration
	mu      sync.Mutex
	stopped bool
}

// NewDebouncer создает debouncer с заданной паузой
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger планирует fn через паузу, отменяя ранее запланированный вызов.
// После Stop вызовы игнорируются.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.cancelLocked()

	d.wg.Add(1)
	d.timer = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()
		fn()
	})
}

// Cancel отменяет запланированный вызов. Возвращает true, если вызов был отменен.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancelLocked()
}

func (d *Debouncer) cancelLocked() bool {
	if d.timer == nil {
		return false
	}
	cancelled := d.timer.Stop()
	if cancelled {
		// функция таймера не запустится, Done за нее
		d.wg.Done()
	}
	d.timer = nil
	return cancelled
}

// Stop отменяет ожидающий вызов и ждет завершения уже запущенного
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.cancelLocked()
	d.mu.Unlock()

	d.wg.Wait()
}
