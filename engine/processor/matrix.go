package processor

import (
	"fmt"

	"github.com/Carmen-Shannon/motive-go/common"
	"github.com/Carmen-Shannon/motive-go/engine/motivator"
)

// Matrix4fType is the motivator type driven by the matrix processor.
const Matrix4fType motivator.Type = "matrix-4f"

// MatrixOperation identifies one basic transform in a matrix motivator's
// composition sequence.
type MatrixOperation int

const (
	TranslateX MatrixOperation = iota
	TranslateY
	TranslateZ
	RotateAboutX
	RotateAboutY
	RotateAboutZ
	ScaleX
	ScaleY
	ScaleZ
	ScaleUniformly
)

// String returns the operation's name for diagnostics.
func (op MatrixOperation) String() string {
	switch op {
	case TranslateX:
		return "TranslateX"
	case TranslateY:
		return "TranslateY"
	case TranslateZ:
		return "TranslateZ"
	case RotateAboutX:
		return "RotateAboutX"
	case RotateAboutY:
		return "RotateAboutY"
	case RotateAboutZ:
		return "RotateAboutZ"
	case ScaleX:
		return "ScaleX"
	case ScaleY:
		return "ScaleY"
	case ScaleZ:
		return "ScaleZ"
	case ScaleUniformly:
		return "ScaleUniformly"
	default:
		return fmt.Sprintf("MatrixOperation(%d)", int(op))
	}
}

// MatrixOperationInit declares one basic transform of a matrix motivator:
// the operation and either a constant value or an init descriptor for the
// nested scalar motivator that drives it. The choice is permanent for the
// life of the slot; target-setters reject constant children and
// constant-setters reject driven ones.
type MatrixOperationInit struct {
	// Operation selects the basic transform.
	Operation MatrixOperation

	// Init, when non-nil, declares the child motivator-driven and describes
	// the nested scalar motivator to create.
	Init motivator.Init

	// Target optionally seeds the nested motivator with an initial target.
	// Ignored for constant children.
	Target *motivator.Target1f

	// Const is the fixed value of a constant child. Ignored when Init is
	// non-nil.
	Const float32
}

// ConstantOp declares a basic transform fixed to a constant value.
//
// Parameters:
//   - op: the basic transform
//   - value: the fixed operation value
//
// Returns:
//   - MatrixOperationInit: the assembled declaration
func ConstantOp(op MatrixOperation, value float32) MatrixOperationInit {
	return MatrixOperationInit{Operation: op, Const: value}
}

// MotivatedOp declares a basic transform driven by a nested scalar
// motivator.
//
// Parameters:
//   - op: the basic transform
//   - init: the init descriptor for the nested motivator
//
// Returns:
//   - MatrixOperationInit: the assembled declaration
func MotivatedOp(op MatrixOperation, init motivator.Init) MatrixOperationInit {
	return MatrixOperationInit{Operation: op, Init: init}
}

// MotivatedOpWithTarget declares a motivator-driven basic transform with an
// initial target.
//
// Parameters:
//   - op: the basic transform
//   - init: the init descriptor for the nested motivator
//   - t: the initial target for the nested motivator
//
// Returns:
//   - MatrixOperationInit: the assembled declaration
func MotivatedOpWithTarget(op MatrixOperation, init motivator.Init, t motivator.Target1f) MatrixOperationInit {
	return MatrixOperationInit{Operation: op, Init: init, Target: &t}
}

// MatrixInit initializes a motivator on the matrix processor: an ordered
// list of basic transforms composed in sequence into a 4x4 affine matrix,
// with the translation in the final column.
type MatrixInit struct {
	Ops []MatrixOperationInit
}

// MotivatorType returns the processor type this descriptor targets.
func (MatrixInit) MotivatorType() motivator.Type { return Matrix4fType }

// matrixOp is the runtime form of one declared operation. Driven ops own a
// nested scalar motivator; constant ops hold their value directly. The ops
// array backing a slot is allocated once at initialization and never
// resized, so the nested handles stay at stable addresses.
type matrixOp struct {
	operation MatrixOperation
	driven    bool
	child     motivator.ScalarMotivator
	constant  float32
}

// value returns the operation's current scalar value.
func (o *matrixOp) value() float32 {
	if o.driven {
		return o.child.Value()
	}
	return o.constant
}

// matrixSlot is the per-motivator state: the operation sequence and the
// matrix composed from it on the last advance.
type matrixSlot struct {
	ops    []matrixOp
	matrix common.Mat4
}

// matrixProcessor implements motivator.MatrixProcessor. Its child scalar
// motivators are advanced by their own processors; the engine runs scalar
// processors first each frame, so recomposition here always sees current
// child values.
type matrixProcessor struct {
	motivator.ProcessorBase
	slots []matrixSlot
}

var _ motivator.MatrixProcessor = &matrixProcessor{}

// NewMatrixProcessor creates the matrix processor. Register it with the
// engine to make Matrix4fType initializable. The scalar types used by
// driven operations must be registered with the same engine.
//
// Returns:
//   - motivator.MatrixProcessor: the new processor
func NewMatrixProcessor() motivator.MatrixProcessor {
	return &matrixProcessor{}
}

func (p *matrixProcessor) Type() motivator.Type { return Matrix4fType }

func (p *matrixProcessor) Dimensions() int { return 16 }

func (p *matrixProcessor) InitializeMotivator(init motivator.Init, engine motivator.Engine, m *motivator.Motivator) error {
	mi, ok := init.(MatrixInit)
	if !ok {
		return fmt.Errorf("matrix: unsupported init descriptor %T", init)
	}
	if len(mi.Ops) == 0 {
		return fmt.Errorf("matrix: init requires at least one operation")
	}

	ops := make([]matrixOp, len(mi.Ops))
	for i := range mi.Ops {
		decl := &mi.Ops[i]
		ops[i].operation = decl.Operation
		ops[i].constant = decl.Const
		if decl.Init == nil {
			continue
		}
		ops[i].driven = true
		// Initialize in place: the nested handle's processor keeps a
		// back-pointer to it, so it must not move after binding.
		if err := ops[i].child.Initialize(decl.Init, engine); err != nil {
			invalidateOps(ops[:i])
			return fmt.Errorf("matrix: initialize child %d (%v): %w", i, decl.Operation, err)
		}
		if decl.Target != nil {
			if err := ops[i].child.SetTarget(*decl.Target); err != nil {
				invalidateOps(ops[:i+1])
				return fmt.Errorf("matrix: target child %d (%v): %w", i, decl.Operation, err)
			}
		}
	}

	index := p.BindMotivator(p, m)
	slot := matrixSlot{ops: ops}
	compose(&slot)
	if int(index) == len(p.slots) {
		p.slots = append(p.slots, slot)
	} else {
		p.slots[index] = slot
	}
	return nil
}

// invalidateOps unwinds the nested motivators of a partially initialized
// operation list.
func invalidateOps(ops []matrixOp) {
	for i := range ops {
		if ops[i].driven {
			ops[i].child.Invalidate()
		}
	}
}

func (p *matrixProcessor) RemoveMotivator(index motivator.Index) {
	if !p.Occupied(index) {
		return
	}
	invalidateOps(p.slots[index].ops)
	p.ProcessorBase.RemoveMotivator(index)
	p.slots[index] = matrixSlot{}
}

func (p *matrixProcessor) ReleaseAll() {
	for i := range p.slots {
		if p.Occupied(motivator.Index(i)) {
			invalidateOps(p.slots[i].ops)
		}
	}
	p.ProcessorBase.ReleaseAll()
	p.slots = p.slots[:0]
}

// AdvanceFrame recomposes every occupied slot's matrix from its operation
// sequence. Child scalar values were advanced earlier in the frame by their
// own processors.
func (p *matrixProcessor) AdvanceFrame(_ float32) {
	for i := range p.slots {
		if !p.Occupied(motivator.Index(i)) {
			continue
		}
		compose(&p.slots[i])
	}
}

// compose rebuilds the slot's matrix by multiplying the basic transforms in
// declaration order.
func compose(s *matrixSlot) {
	out := s.matrix[:]
	common.Identity(out)
	var op [16]float32
	for i := range s.ops {
		v := s.ops[i].value()
		switch s.ops[i].operation {
		case TranslateX:
			common.BuildTranslation(op[:], v, 0, 0)
		case TranslateY:
			common.BuildTranslation(op[:], 0, v, 0)
		case TranslateZ:
			common.BuildTranslation(op[:], 0, 0, v)
		case RotateAboutX:
			common.BuildRotationX(op[:], v)
		case RotateAboutY:
			common.BuildRotationY(op[:], v)
		case RotateAboutZ:
			common.BuildRotationZ(op[:], v)
		case ScaleX:
			common.BuildScale(op[:], v, 1, 1)
		case ScaleY:
			common.BuildScale(op[:], 1, v, 1)
		case ScaleZ:
			common.BuildScale(op[:], 1, 1, v)
		case ScaleUniformly:
			common.BuildScale(op[:], v, v, v)
		}
		common.Mul4(out, out, op[:])
	}
}

func (p *matrixProcessor) Value(index motivator.Index) common.Mat4 {
	return p.slots[index].matrix
}

func (p *matrixProcessor) ChildValue1f(index motivator.Index, child motivator.ChildIndex) float32 {
	return p.slots[index].ops[child].value()
}

func (p *matrixProcessor) ChildValue3f(index motivator.Index, child motivator.ChildIndex) common.Vec3 {
	ops := p.slots[index].ops
	return common.Vec3{ops[child].value(), ops[child+1].value(), ops[child+2].value()}
}

func (p *matrixProcessor) SetChildTarget1f(index motivator.Index, child motivator.ChildIndex, t motivator.Target1f) error {
	op, err := p.childOp(index, child)
	if err != nil {
		return err
	}
	if !op.driven {
		return fmt.Errorf("matrix: child %d (%v): %w", child, op.operation, motivator.ErrChildConstant)
	}
	return op.child.SetTarget(t)
}

func (p *matrixProcessor) SetChildValue1f(index motivator.Index, child motivator.ChildIndex, value float32) error {
	op, err := p.childOp(index, child)
	if err != nil {
		return err
	}
	if op.driven {
		return fmt.Errorf("matrix: child %d (%v): %w", child, op.operation, motivator.ErrChildDriven)
	}
	op.constant = value
	compose(&p.slots[index])
	return nil
}

func (p *matrixProcessor) SetChildValue3f(index motivator.Index, child motivator.ChildIndex, value common.Vec3) error {
	s := &p.slots[index]
	for i := 0; i < 3; i++ {
		op, err := p.childOp(index, child+motivator.ChildIndex(i))
		if err != nil {
			return err
		}
		if op.driven {
			return fmt.Errorf("matrix: child %d (%v): %w", child+motivator.ChildIndex(i), op.operation, motivator.ErrChildDriven)
		}
	}
	for i := 0; i < 3; i++ {
		s.ops[child+motivator.ChildIndex(i)].constant = value[i]
	}
	compose(s)
	return nil
}

// childOp resolves a (slot, child) pair, reporting out-of-range children as
// errors rather than panicking: a bad child index is a caller usage error
// the processor must surface.
func (p *matrixProcessor) childOp(index motivator.Index, child motivator.ChildIndex) (*matrixOp, error) {
	ops := p.slots[index].ops
	if child < 0 || int(child) >= len(ops) {
		return nil, fmt.Errorf("matrix: child index %d out of range [0, %d)", child, len(ops))
	}
	return &ops[child], nil
}
