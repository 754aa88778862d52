package config

import (
	"os"
	"runtime"
	"strconv"
	"time"
)

type ExecutorConfig struct {
	// CaseTimeout bounds a single test case; zero disables the limit
	CaseTimeout      time.Duration
	MaxCallStackSize int
}

func NewExecutorConfig() *ExecutorConfig {
	timeoutMs, err := strconv.Atoi(os.Getenv("EXEC_TIMEOUT_MS"))
	if err != nil || timeoutMs < 0 {
		timeoutMs = 2000
	}
	stack, err := strconv.Atoi(os.Getenv("EXEC_MAX_CALL_STACK"))
	if err != nil || stack <= 0 {
		stack = 2048
	}
	return &ExecutorConfig{
		CaseTimeout:      time.Duration(timeoutMs) * time.Millisecond,
		MaxCallStackSize: stack,
	}
}

type JudgeSvcCfg struct {
	MaxConcurrent  int64
	AcquireTimeout time.Duration
}

func NewJudgeSvcCfg() *JudgeSvcCfg {
	maxConcurrent, err := strconv.ParseInt(os.Getenv("JUDGE_MAX_CONCURRENT"), 10, 64)
	if err != nil || maxConcurrent <= 0 {
		maxConcurrent = int64(runtime.NumCPU())
	}
	acquireMs, err := strconv.Atoi(os.Getenv("JUDGE_ACQUIRE_TIMEOUT_MS"))
	if err != nil || acquireMs <= 0 {
		acquireMs = 10000
	}
	return &JudgeSvcCfg{
		MaxConcurrent:  maxConcurrent,
		AcquireTimeout: time.Duration(acquireMs) * time.Millisecond,
	}
}
