package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/lanerunner/common"
	"github.com/milk9111/lanerunner/ecs"
	"github.com/milk9111/lanerunner/ecs/component"
	"github.com/milk9111/lanerunner/logging"
	"go.uber.org/zap"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypeSolid
)

// PhysicsSystem steps a Chipmunk space in the X/Y plane. Lanes own X, so the
// player's body is placed from the transform before each step and only Y is
// copied back.
type PhysicsSystem struct {
	logger        *zap.Logger
	space         *cp.Space
	handlersReady bool

	entities     map[ecs.Entity]*bodyInfo
	playerShapes map[*cp.Shape]ecs.Entity
	playerStates map[ecs.Entity]*playerContactState
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool
	// read by the body's velocity update; refreshed from the controller every tick
	gravityScale float64
}

type playerContactState struct {
	maxSlope   float64
	grounded   bool
	slopeAngle float64
}

func NewPhysicsSystem(logger *zap.Logger) *PhysicsSystem {
	return &PhysicsSystem{
		logger:       logging.OrNop(logger).Named("physics"),
		space:        newSpace(),
		entities:     make(map[ecs.Entity]*bodyInfo),
		playerShapes: make(map[*cp.Shape]ecs.Entity),
		playerStates: make(map[ecs.Entity]*playerContactState),
	}
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.space = newSpace()
		ps.handlersReady = false
	}
	dt := w.Delta()
	if dt <= 0 {
		return
	}

	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.applyControls(w)
	ps.resetPlayerContacts(w)

	ps.space.Step(dt)

	ps.syncTransforms(w)
	ps.flushPlayerContacts(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	groundHandler := ps.space.NewCollisionHandler(collisionTypePlayer, collisionTypeSolid)
	groundHandler.UserData = ps
	groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		playerEntity, playerIsA := sys.playerShapes[shapeA]
		if !playerIsA {
			var okB bool
			playerEntity, okB = sys.playerShapes[shapeB]
			if !okB {
				return true
			}
		}

		// The arbiter normal points from A to B; flip it so it points from
		// the surface toward the player.
		n := arb.Normal()
		if playerIsA {
			n = n.Neg()
		}

		st := sys.playerStates[playerEntity]
		if st == nil {
			return true
		}
		angle := slopeAngle(n)
		if angle <= st.maxSlope {
			st.grounded = true
			st.slopeAngle = angle
		}
		return true
	}

	ps.handlersReady = true
}

// slopeAngle is the angle between a surface normal and straight up.
func slopeAngle(n cp.Vector) float64 {
	l := n.Length()
	if l == 0 {
		return math.Pi
	}
	return math.Acos(common.Clamp(n.Y/l, -1, 1))
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
			if info := ps.entities[e]; info != nil {
				bodyComp.Body = info.body
				bodyComp.Shape = info.shape
				return
			}

			isPlayer := ecs.Has(w, e, component.PlayerTagComponent.Kind())
			info := ps.createBodyInfo(transform, bodyComp, isPlayer)
			ps.entities[e] = info
			if isPlayer {
				ps.playerShapes[info.shape] = e
			}
			bodyComp.Body = info.body
			bodyComp.Shape = info.shape
			ps.logger.Debug("body created",
				zap.Stringer("entity", e),
				zap.Bool("static", info.static),
				zap.Float64("x", transform.Position.X()),
				zap.Float64("y", transform.Position.Y()),
			)
		})
}

func (ps *PhysicsSystem) createBodyInfo(transform *component.Transform, bodyComp *component.PhysicsBody, isPlayer bool) *bodyInfo {
	width := bodyComp.Width
	height := bodyComp.Height
	if width <= 0 || height <= 0 {
		width, height = 1, 1
	}
	center := cp.Vector{X: transform.Position.X(), Y: transform.Position.Y()}

	if bodyComp.Static {
		bb := cp.BB{
			L: center.X - width/2,
			B: center.Y - height/2,
			R: center.X + width/2,
			T: center.Y + height/2,
		}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Restitution)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, shape: shape, static: true}
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}

	moment := cp.MomentForBox(mass, width, height)
	if isPlayer {
		// rotation locked; the roll is purely visual
		moment = cp.INFINITY
	}

	body := cp.NewBody(mass, moment)
	body.SetPosition(center)
	body.SetAngle(0)
	body.SetAngularVelocity(0)

	info := &bodyInfo{body: body, gravityScale: 1}
	body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		cp.BodyUpdateVelocity(body, gravity.Mult(info.gravityScale), damping, dt)
	})

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Restitution)
	shape.SetCollisionType(collisionTypeSolid)
	if isPlayer {
		shape.SetCollisionType(collisionTypePlayer)
	}

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	info.shape = shape
	return info
}

// applyControls pins dynamic bodies to their lane position, damps sideways
// drift and turns jump requests into vertical velocity.
func (ps *PhysicsSystem) applyControls(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
			if bodyComp.Static || bodyComp.Body == nil {
				return
			}
			body := bodyComp.Body
			pos := body.Position()
			body.SetPosition(cp.Vector{X: transform.Position.X(), Y: pos.Y})

			cc, ok := ecs.Get(w, e, component.CharacterControllerComponent.Kind())
			if !ok {
				return
			}
			if info := ps.entities[e]; info != nil {
				info.gravityScale = cc.GravityScale
			}
			vel := body.Velocity()
			vel.X *= cc.Damping

			if req, ok := ecs.Get(w, e, component.ActionRequestComponent.Kind()); ok && req.Jump {
				req.Jump = false
				if g, ok := ecs.Get(w, e, component.GroundedComponent.Kind()); ok && g.OnGround {
					vel.Y = cc.JumpImpulse
					ps.logger.Debug("jump", zap.Stringer("entity", e), zap.Float64("vy", vel.Y))
				}
			}

			body.SetVelocityVector(vel)
			body.SetAngle(0)
			body.SetAngularVelocity(0)
		})
}

func (ps *PhysicsSystem) resetPlayerContacts(w *ecs.World) {
	seen := make(map[ecs.Entity]struct{})
	ecs.ForEach(w, component.CharacterControllerComponent.Kind(), func(e ecs.Entity, cc *component.CharacterController) {
		if _, tracked := ps.entities[e]; !tracked {
			return
		}
		seen[e] = struct{}{}
		st := ps.playerStates[e]
		if st == nil {
			st = &playerContactState{}
			ps.playerStates[e] = st
		}
		st.maxSlope = cc.MaxSlopeAngle
		st.grounded = false
		st.slopeAngle = 0
	})

	for e := range ps.playerStates {
		if _, ok := seen[e]; !ok {
			delete(ps.playerStates, e)
		}
	}
}

func (ps *PhysicsSystem) flushPlayerContacts(w *ecs.World) {
	for e, st := range ps.playerStates {
		g, ok := ecs.Get(w, e, component.GroundedComponent.Kind())
		if !ok {
			continue
		}
		g.OnGround = st.grounded
		g.SlopeAngle = st.slopeAngle
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
			if bodyComp.Static || bodyComp.Body == nil {
				return
			}
			transform.Position[1] = bodyComp.Body.Position().Y
		})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}

		if info.shape != nil {
			ps.space.RemoveShape(info.shape)
			delete(ps.playerShapes, info.shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
		delete(ps.playerStates, e)
	}
}
