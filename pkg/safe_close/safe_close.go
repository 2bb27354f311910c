// Package safe_close 提供多服务协同关闭的原语
package safe_close

import (
	"sync"
)

// SafeClose coordinates the shutdown of attached goroutines:
// any of them may send a close signal, and WaitClosed blocks until
// all of them have marked themselves done
// SafeClose 协调已挂载协程的关闭：任意协程都可以发出关闭信号，
// WaitClosed 阻塞直到所有协程标记完成
type SafeClose struct {
	m sync.Mutex

	closeNotify chan struct{}
	closeOnce   sync.Once
	closeErr    error

	wg sync.WaitGroup
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeNotify: make(chan struct{}),
	}
}

// Attach starts f in a new goroutine; f must call done() when finished
// and should return once closeSignal is closed
// Attach 在新协程中启动 f；f 结束时必须调用 done()，
// 并在 closeSignal 关闭后尽快返回
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	var doneOnce sync.Once
	done := func() {
		doneOnce.Do(s.wg.Done)
	}
	go f(done, s.closeNotify)
}

// SendCloseSignal closes the signal channel; the first error wins
// SendCloseSignal 关闭信号通道，首个错误会被保留
func (s *SafeClose) SendCloseSignal(err error) {
	s.closeOnce.Do(func() {
		s.m.Lock()
		s.closeErr = err
		s.m.Unlock()
		close(s.closeNotify)
	})
}

// CloseNotify returns the channel closed by SendCloseSignal
// CloseNotify 返回由 SendCloseSignal 关闭的通道
func (s *SafeClose) CloseNotify() <-chan struct{} {
	return s.closeNotify
}

// WaitClosed blocks until the close signal is sent and all attached
// goroutines have called done, then returns the close error
// WaitClosed 阻塞直到关闭信号发出且所有挂载协程完成，返回关闭错误
func (s *SafeClose) WaitClosed() error {
	<-s.closeNotify
	s.wg.Wait()

	s.m.Lock()
	defer s.m.Unlock()
	return s.closeErr
}
