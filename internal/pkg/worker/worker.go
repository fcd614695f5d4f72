package worker

import (
	"sync"
	"time"
	"yumzy/pkg/logger"

	"go.uber.org/zap"
)

// LedgerTask 积分流水写入任务
type LedgerTask struct {
	UserID  string
	OrderID string
	Kind    string // earned, redeemed
	Points  int
	Retry   int // 重试次数
}

// LedgerWriter 持久化积分流水
type LedgerWriter interface {
	WriteLedgerEntry(task LedgerTask) error
}

// Observer 任务结果回调 (success / retry / dropped)
type Observer func(outcome string)

type WorkerPool struct {
	TaskQueue  chan LedgerTask
	RetryQueue chan LedgerTask // 重试队列
	Writer     LedgerWriter
	WorkerNum  int
	MaxRetry   int
	RetryDelay time.Duration // 第 n 次重试前等待 n*RetryDelay
	Observe    Observer

	wg       sync.WaitGroup
	retryWg  sync.WaitGroup
	stopOnce sync.Once
	mu       sync.RWMutex
	stopped  bool
}

func NewWorkerPool(writer LedgerWriter, workerNum, bufferSize, maxRetry int) *WorkerPool {
	retryBuf := bufferSize / 2
	if retryBuf == 0 {
		retryBuf = 1
	}
	return &WorkerPool{
		TaskQueue:  make(chan LedgerTask, bufferSize),
		RetryQueue: make(chan LedgerTask, retryBuf),
		Writer:     writer,
		WorkerNum:  workerNum,
		MaxRetry:   maxRetry,
		RetryDelay: time.Second,
	}
}

func (p *WorkerPool) Start() {
	for i := 0; i < p.WorkerNum; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	p.retryWg.Add(1)
	go p.retryWorker()
	logger.Log.Info("Worker pool started", zap.Int("workers", p.WorkerNum))
}

// Stop 停止接收新任务并等待队列中的任务处理完
func (p *WorkerPool) Stop() {
	p.stopOnce.Do(func() {
		p.mu.Lock()
		p.stopped = true
		p.mu.Unlock()

		close(p.TaskQueue)
		p.wg.Wait()
		close(p.RetryQueue)
		p.retryWg.Wait()
	})
}

func (p *WorkerPool) observe(outcome string) {
	if p.Observe != nil {
		p.Observe(outcome)
	}
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()
	for task := range p.TaskQueue {
		err := p.Writer.WriteLedgerEntry(task)
		if err == nil {
			p.observe("success")
			continue
		}

		logger.Log.Warn("Failed to write ledger entry",
			zap.Int("worker", id),
			zap.String("user_id", task.UserID),
			zap.String("order_id", task.OrderID),
			zap.Error(err),
		)

		// 如果未达到最大重试次数，加入重试队列
		if task.Retry < p.MaxRetry {
			task.Retry++
			select {
			case p.RetryQueue <- task:
				p.observe("retry")
			default:
				p.logFailedTask(task, err)
			}
		} else {
			p.logFailedTask(task, err)
		}
	}
}

// retryWorker 每个任务各自计时，长延迟的任务不阻塞后续重试
func (p *WorkerPool) retryWorker() {
	defer p.retryWg.Done()
	var pending sync.WaitGroup
	for task := range p.RetryQueue {
		pending.Add(1)
		go func(task LedgerTask) {
			defer pending.Done()
			time.Sleep(time.Duration(task.Retry) * p.RetryDelay)
			p.retry(task)
		}(task)
	}
	pending.Wait()
}

func (p *WorkerPool) retry(task LedgerTask) {
	// 已停止时直接同步写一次
	p.mu.RLock()
	stopped := p.stopped
	p.mu.RUnlock()
	if stopped {
		if err := p.Writer.WriteLedgerEntry(task); err != nil {
			p.logFailedTask(task, err)
		} else {
			p.observe("success")
		}
		return
	}

	if !p.enqueue(task) {
		p.logFailedTask(task, nil)
	}
}

// enqueue 非阻塞入队，已停止或队列已满返回 false
func (p *WorkerPool) enqueue(task LedgerTask) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return false
	}
	select {
	case p.TaskQueue <- task:
		return true
	default:
		return false
	}
}

func (p *WorkerPool) logFailedTask(task LedgerTask, err error) {
	p.observe("dropped")
	logger.Log.Error("[DeadLetter] ledger task failed permanently",
		zap.String("user_id", task.UserID),
		zap.String("order_id", task.OrderID),
		zap.String("kind", task.Kind),
		zap.Int("points", task.Points),
		zap.Error(err),
	)
}

// AddTask 提交任务，队列已满时进入死信日志
func (p *WorkerPool) AddTask(task LedgerTask) {
	if !p.enqueue(task) {
		p.logFailedTask(task, nil)
	}
}
