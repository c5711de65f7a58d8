package service

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"qa-dashboard/internal/apperr"
	"qa-dashboard/internal/config"
	"qa-dashboard/internal/model"
	"qa-dashboard/internal/store"

	"github.com/rs/zerolog"
)

// 每次执行生成的固定结果批次
var canonicalTests = []string{"Login", "Navigation", "Forms", "API", "Performance"}

// Runner 执行生命周期引擎：创建 running 记录后立即返回，
// 由独立 goroutine 完成"成熟"（写结果批次并落终态）。
// 同一执行 id 最多只有一个在途成熟任务。
type Runner struct {
	store *store.ExecutionStore
	log   zerolog.Logger

	waitMin time.Duration
	waitMax time.Duration

	// 测试可注入：种子随机源与睡眠函数
	rngMu sync.Mutex
	rng   *rand.Rand
	sleep func(time.Duration)

	inflightMu sync.Mutex
	inflight   map[uint]struct{}

	wg sync.WaitGroup
}

func NewRunner(s *store.ExecutionStore, cfg config.RunnerConfig, logger zerolog.Logger) *Runner {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Runner{
		store:    s,
		log:      logger,
		waitMin:  time.Duration(cfg.WaitMinSeconds) * time.Second,
		waitMax:  time.Duration(cfg.WaitMaxSeconds) * time.Second,
		rng:      rand.New(rand.NewSource(seed)),
		sleep:    time.Sleep,
		inflight: map[uint]struct{}{},
	}
}

// Run 创建执行并调度后台成熟任务，不等待完成
func (r *Runner) Run(category, environment string) (*model.Execution, error) {
	if category == "" {
		category = model.CategoryComplete
	}
	if environment == "" {
		environment = "development"
	}

	notes := fmt.Sprintf("Execution started via API - %s", time.Now().Format("02/01/2006 15:04"))
	exec, err := r.store.Create(category, environment, notes)
	if err != nil {
		return nil, err
	}

	r.spawn(exec.ID)
	return exec, nil
}

// Wait 阻塞到所有在途成熟任务结束，仅测试使用
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) spawn(id uint) {
	r.inflightMu.Lock()
	if _, ok := r.inflight[id]; ok {
		r.inflightMu.Unlock()
		return
	}
	r.inflight[id] = struct{}{}
	r.inflightMu.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			r.inflightMu.Lock()
			delete(r.inflight, id)
			r.inflightMu.Unlock()
		}()
		r.mature(id)
	}()
}

// mature 模拟测试运行：等待、生成结果、落终态。
// 执行记录不存在时静默放弃；失败不重试，记录停留在 running。
func (r *Runner) mature(id uint) {
	wait := r.randomWait()
	r.sleep(wait)

	results, status := r.randomOutcome(id)

	duration := int(wait / time.Second)
	if duration <= 0 {
		duration = 1
	}

	if err := r.store.Finalize(id, results, status, duration); err != nil {
		if apperr.IsNotFound(err) {
			r.log.Warn().Uint("execution_id", id).Msg("执行记录已不存在，放弃成熟任务")
			return
		}
		r.log.Error().Err(err).Uint("execution_id", id).Msg("成熟任务写入失败")
		return
	}

	r.log.Info().Uint("execution_id", id).Str("status", status).Int("duration", duration).
		Msg("执行完成")
}

func (r *Runner) randomWait() time.Duration {
	r.rngMu.Lock()
	defer r.rngMu.Unlock()
	if r.waitMax <= r.waitMin {
		return r.waitMin
	}
	return r.waitMin + time.Duration(r.rng.Int63n(int64(r.waitMax-r.waitMin)))
}

// randomOutcome 生成固定 5 条结果与终态。
// 结果状态权重 passed 70% / failed 20% / skipped 10%，终态 success 80% / failure 20%。
func (r *Runner) randomOutcome(id uint) ([]model.Result, string) {
	r.rngMu.Lock()
	defer r.rngMu.Unlock()

	results := make([]model.Result, 0, len(canonicalTests))
	for i, name := range canonicalTests {
		status := r.randomResultStatus()
		res := model.Result{
			ExecutionID:   id,
			TestName:      fmt.Sprintf("Test %s - %d", name, i+1),
			Status:        status,
			ExecutionTime: 5 + r.rng.Float64()*25,
		}
		if status != model.ResultPassed {
			res.ErrorMessage = "Validation error"
		}
		results = append(results, res)
	}

	status := model.StatusSuccess
	if r.rng.Float64() <= 0.2 {
		status = model.StatusFailure
	}
	return results, status
}

func (r *Runner) randomResultStatus() string {
	switch n := r.rng.Intn(100); {
	case n < 70:
		return model.ResultPassed
	case n < 90:
		return model.ResultFailed
	default:
		return model.ResultSkipped
	}
}
