package eval

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
	"sync"

	"github.com/josephlewis42/toysh/core/logger"
	"github.com/josephlewis42/toysh/core/shell"
)

// BranchCommand is the hidden subcommand that runs a background branch.
const BranchCommand = "branch"

// Launcher returns an unstarted command that evaluates words, as produced by
// shell.Expr.Words, in a new process.
type Launcher func(words []string) (*exec.Cmd, error)

// SelfLauncher re-invokes the running executable with BranchCommand.
// globalArgs are passed ahead of the subcommand.
func SelfLauncher(globalArgs ...string) Launcher {
	return func(words []string) (*exec.Cmd, error) {
		self, err := os.Executable()
		if err != nil {
			return nil, err
		}

		var args []string
		args = append(args, globalArgs...)
		args = append(args, BranchCommand, "--")
		args = append(args, words...)
		return exec.Command(self, args...), nil
	}
}

// Job is a background branch running in its own process.
type Job struct {
	Pid   int
	Words []string

	done chan struct{}
}

// Done is closed once the job's process has exited and its completion was
// announced.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Supervisor starts background jobs and runs one watcher per job that
// announces the job's completion.
type Supervisor struct {
	Launch Launcher
	// Out receives the jobs' output and the notices.
	Out *Printer
	// Stderr receives the jobs' standard error, Out if nil.
	Stderr io.Writer
	Log    *logger.SessionLogger

	mu      sync.Mutex
	running map[int]*Job
	wg      sync.WaitGroup
}

// Start launches words as a background job with input on its standard input
// and returns without waiting for it.
func (s *Supervisor) Start(words []string, input string) (*Job, error) {
	if s.Launch == nil {
		return nil, fmt.Errorf("%w: no launcher", shell.ErrForkFailure)
	}

	cmd, err := s.Launch(words)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shell.ErrForkFailure, err)
	}
	cmd.Stdout = s.Out
	cmd.Stderr = s.Out
	if s.Stderr != nil {
		cmd.Stderr = s.Stderr
	}
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %v", shell.ErrForkFailure, err)
	}

	job := &Job{
		Pid:   cmd.Process.Pid,
		Words: words,
		done:  make(chan struct{}),
	}

	s.mu.Lock()
	if s.running == nil {
		s.running = make(map[int]*Job)
	}
	s.running[job.Pid] = job
	s.mu.Unlock()

	s.Out.JobStarted(job.Pid)
	s.Log.Record(&logger.JobStarted{Pid: job.Pid, Command: words})

	s.wg.Add(1)
	go s.watch(cmd, job)

	return job, nil
}

// watch reports completion, not exit status.
func (s *Supervisor) watch(cmd *exec.Cmd, job *Job) {
	defer s.wg.Done()

	_ = cmd.Wait()

	s.mu.Lock()
	delete(s.running, job.Pid)
	s.mu.Unlock()

	s.Out.JobDone(job.Pid)
	s.Log.Record(&logger.JobDone{Pid: job.Pid})
	close(job.done)
}

// Running returns the pids of jobs that haven't been reported done.
func (s *Supervisor) Running() []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	pids := make([]int, 0, len(s.running))
	for pid := range s.running {
		pids = append(pids, pid)
	}
	sort.Ints(pids)
	return pids
}

// Wait blocks until every started job has been reported done.
func (s *Supervisor) Wait() {
	s.wg.Wait()
}
