package nav

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/johndoe6345789/3dfsnav/anim"
	"github.com/johndoe6345789/3dfsnav/camera"
	"github.com/johndoe6345789/3dfsnav/tree"
	"github.com/johndoe6345789/3dfsnav/vmath"
)

func (n *Navigator) lockFor(t Transition, gesture uint64) {
	n.state = StateLocked
	n.lock = t
	n.lockGesture = gesture
	n.log.WithFields(logrus.Fields{"transition": t.String(), "path": n.path}).Debug("transition started")
	n.listener.TransitionStarted(t)
}

func (n *Navigator) unlock(now time.Time) {
	n.log.WithField("transition", n.lock.String()).Debug("transition finished")
	n.state = StateIdle
	n.lock = TransitionNone
	n.lockGesture = 0
	if n.press.active {
		n.press = press{}
	}
	if n.pending != nil {
		n.src, n.pending = n.pending, nil
		n.reload(now)
	}
}

// tweenPose animates the camera toward target
func (n *Navigator) tweenPose(now time.Time, target camera.Pose, d time.Duration, ease anim.Easing) {
	p := n.cam.Pose
	n.sched.Tween(keyYaw, now, p.Yaw, target.Yaw, d, ease, n.cam.SetYaw)
	n.sched.Tween(keyPitch, now, p.Pitch, target.Pitch, d, ease, n.cam.SetPitch)
	n.sched.Tween(keyDist, now, p.Distance, target.Distance, d, ease, n.cam.SetDistance)
}

func (n *Navigator) fadeOut(now time.Time, d time.Duration) {
	n.sched.Tween(keyFade, now, n.fade, 0, d, anim.EaseIn, func(v float64) { n.fade = v })
}

// selectAndFly is the deferred single click action
func (n *Navigator) selectAndFly(now time.Time, path string, gesture uint64) {
	i := n.indexOf(path)
	if i < 0 {
		return
	}
	n.selected = path
	if n.state == StateLocked {
		return
	}

	n.lockFor(TransitionFlyTo, gesture)
	target := n.cam.FlyToPose(n.placed[i].Pos, n.opts.FlyApproach, n.opts.FlyPitch)
	n.tweenPose(now, target, n.opts.FlyTo, anim.EaseInOutCubic)
	n.deferred.After(taskTransition, now, n.opts.FlyTo, n.unlock)
}

func (n *Navigator) abortFlyTo() {
	n.sched.Cancel(keyYaw)
	n.sched.Cancel(keyPitch)
	n.sched.Cancel(keyDist)
	n.deferred.Cancel(taskTransition)
	n.log.Debug("fly-to aborted by double click")
	n.state = StateIdle
	n.lock = TransitionNone
	n.lockGesture = 0
}

func (n *Navigator) drillDown(now time.Time, node tree.Node) {
	n.deferred.Cancel(taskClick)
	n.lastClick = click{}
	n.selected = node.Path
	n.lockFor(TransitionDrillDown, n.gesture)

	var pos vmath.Vec3F
	if i := n.indexOf(node.Path); i >= 0 {
		pos = n.placed[i].Pos
	}
	target := n.cam.FlyToPose(pos, 0, n.opts.FlyPitch)
	target.Yaw += n.opts.DrillSpin
	target.Distance = n.cam.Limits.DistMin

	n.fadeOut(now, n.opts.DrillDown)
	n.tweenPose(now, target, n.opts.DrillDown, anim.EaseInOutCubic)
	path := node.Path
	n.deferred.After(taskTransition, now, n.opts.DrillDown, func(at time.Time) {
		n.enterLevel(at, path)
	})
}

func (n *Navigator) drillOut(now time.Time) {
	n.deferred.Cancel(taskClick)
	n.lastClick = click{}
	n.lockFor(TransitionDrillOut, n.gesture)

	p := n.cam.Pose
	target := camera.Pose{
		Yaw:      p.Yaw,
		Pitch:    n.cam.ClampPitch(p.Pitch + n.opts.Rise),
		Distance: n.cam.ClampDistance(p.Distance + n.opts.PullBack),
		FOV:      p.FOV,
	}

	n.fadeOut(now, n.opts.DrillOut)
	n.tweenPose(now, target, n.opts.DrillOut, anim.EaseInOut)
	parent := tree.Parent(n.path)
	n.deferred.After(taskTransition, now, n.opts.DrillOut, func(at time.Time) {
		n.enterLevel(at, parent)
	})
}

// enterLevel swaps to path, re-materializes it and resets the camera
func (n *Navigator) enterLevel(now time.Time, path string) {
	n.sched.CancelPrefix("camera.")
	n.sched.CancelPrefix(keyNode)
	n.sched.Cancel(keyFade)
	n.deferred.CancelPrefix(taskAppear)
	n.deferred.Cancel(taskClick)
	n.lastClick = click{}

	from := n.path
	n.path = path
	n.selected = ""
	if n.pending != nil {
		n.src, n.pending = n.pending, nil
	}
	n.materialize(now)
	n.cam.Reset()
	n.fade = 1
	n.project()

	n.log.WithFields(logrus.Fields{"from": from, "path": path, "nodes": len(n.placed)}).Info("level entered")
	n.unlock(now)
}
