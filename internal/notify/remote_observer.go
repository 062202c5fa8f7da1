// SPDX-FileCopyrightText: 2022 SoftIron Limited <info@softiron.com>
// SPDX-License-Identifier: GNU General Public License v2.0 only WITH Classpath exception 2.0

package notify

import (
	"github.com/softiron/cworker/internal/logger"
	"github.com/softiron/cworker/pkg/worker"
)

// RemoteObserver is a worker.Observer that forwards every lifecycle hook
// to a remote monitor process over a MessageConnection. A send that
// blocks on a slow peer blocks the goroutine that drove the transition,
// exactly as any other synchronous Observer callback would.
type RemoteObserver struct {
	worker.NopObserver
	name string
	conn *MessageConnection
}

// NewRemoteObserver wraps conn so it can be registered with
// (*worker.Worker).AddListener. workerName is stamped on every Event so
// a monitor watching several workers over one connection can tell them
// apart.
func NewRemoteObserver(workerName string, conn *MessageConnection) *RemoteObserver {
	return &RemoteObserver{name: workerName, conn: conn}
}

func (r *RemoteObserver) send(hook string, failure string) {
	evt := Event{WorkerName: r.name, Hook: hook, Failure: failure}
	if err := r.conn.Send(hook, &evt); err != nil {
		logger.Warnf("notify: failed to forward %s for worker %q: %v\n", hook, r.name, err)
	}
}

func (r *RemoteObserver) Running()                   { r.send(HookRunning, "") }
func (r *RemoteObserver) RunningWaitingToPause()     { r.send(HookRunningWaitingToPause, "") }
func (r *RemoteObserver) RunningWaitingToStop()      { r.send(HookRunningWaitingToStop, "") }
func (r *RemoteObserver) Stopping()                  { r.send(HookStopping, "") }
func (r *RemoteObserver) StoppedAfterStopRequest()   { r.send(HookStoppedAfterStopRequest, "") }
func (r *RemoteObserver) StoppedNormally()           { r.send(HookStoppedNormally, "") }
func (r *RemoteObserver) Paused()                    { r.send(HookPaused, "") }
func (r *RemoteObserver) Restarted()                 { r.send(HookRestarted, "") }

func (r *RemoteObserver) Crashed(failure error) {
	msg := ""
	if failure != nil {
		msg = failure.Error()
	}
	r.send(HookCrashed, msg)
}
