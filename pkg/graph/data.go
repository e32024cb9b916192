package graph

// ---------------------------------------------------------------------------
// Material
// ---------------------------------------------------------------------------

// MaterialSpec describes the stock a primitive is authored against.
// Advisory only — it never feeds the tessellator or the renderer, only
// the material-tier validator (Tier 3) and whatever downstream tooling
// consumes the graph's metadata.
type MaterialSpec struct {
	Species   string  `json:"species,omitempty"`   // stock identifier, e.g. "white-oak", "6061-t6"
	Thickness float64 `json:"thickness,omitempty"` // nominal thickness in mm
	Grade     string  `json:"grade,omitempty"`      // stock grade/spec, e.g. "FAS", "aerospace"
	Notes     string  `json:"notes,omitempty"`
}

// ---------------------------------------------------------------------------
// Primitives
// ---------------------------------------------------------------------------

// PrimitiveKind distinguishes between primitive shapes.
type PrimitiveKind int

const (
	PrimBoard PrimitiveKind = iota // rectangular solid
	PrimDowel                      // cylindrical solid
)

// BoardData represents a rectangular slab primitive: a box defined by its
// three edge lengths, with an orientation axis (Grain) that downstream
// validation treats as the stock's anisotropic direction.
type BoardData struct {
	PrimKind   PrimitiveKind `json:"prim_kind"`
	Dimensions Vec3          `json:"dimensions"` // edge lengths (x, y, z) in mm
	Grain      Axis          `json:"grain"`      // stock's anisotropic/long axis
	Material   MaterialSpec  `json:"material"`
}

func (BoardData) nodeData() {}

// DowelData represents a cylindrical solid primitive (round stock).
type DowelData struct {
	PrimKind PrimitiveKind `json:"prim_kind"`
	Diameter float64       `json:"diameter"` // mm
	Length   float64       `json:"length"`   // mm
	Grain    Axis          `json:"grain"`
	Material MaterialSpec  `json:"material"`
}

func (DowelData) nodeData() {}

// ---------------------------------------------------------------------------
// Transform
// ---------------------------------------------------------------------------

// TransformData represents a spatial transform applied to a child subtree.
// Created by the (place ...) authoring form.
type TransformData struct {
	Translation *Vec3 `json:"translation,omitempty"`
	Rotation    *Vec3 `json:"rotation,omitempty"` // Euler angles in degrees
}

func (TransformData) nodeData() {}

// ---------------------------------------------------------------------------
// Group
// ---------------------------------------------------------------------------

// GroupData represents a named collection of child nodes with no geometric
// effect of its own. Created by the (assembly ...) authoring form.
type GroupData struct {
	Description string `json:"description,omitempty"`
}

func (GroupData) nodeData() {}

// ---------------------------------------------------------------------------
// Join
// ---------------------------------------------------------------------------

// JoinKind enumerates the face-to-face contact constraints a join node
// can assert between two primitives.
type JoinKind int

const (
	JoinButt      JoinKind = iota // flush face-to-face contact, no interlocking geometry (MVP)
	JoinOverlap                   // one part's edge steps into a shoulder cut in the other (post-MVP)
	JoinSlot                      // one part's edge seats in a channel cut across the other (post-MVP)
	JoinSocket                    // a tenon/boss on one part seats in a socket cut in the other (post-MVP)
	JoinInterlock                 // interleaved pins/tails resist separation along one axis (post-MVP)
)

func (k JoinKind) String() string {
	switch k {
	case JoinButt:
		return "butt"
	case JoinOverlap:
		return "overlap"
	case JoinSlot:
		return "slot"
	case JoinSocket:
		return "socket"
	case JoinInterlock:
		return "interlock"
	default:
		return "unknown"
	}
}

// JoinData specifies a contact constraint between two primitives.
// For MVP, joins are metadata-only: they validate face contact and carry
// fastener specs but produce no geometry modifications of their own.
type JoinData struct {
	Kind      JoinKind `json:"kind"`
	PartA     NodeID   `json:"part_a"`
	FaceA     FaceID   `json:"face_a"`
	PartB     NodeID   `json:"part_b"`
	FaceB     FaceID   `json:"face_b"`
	Clearance float64  `json:"clearance"` // gap in mm (0 = use global default)
	Params    JoinParams `json:"params"`
	Fasteners []NodeID `json:"fasteners,omitempty"`
}

func (JoinData) nodeData() {}

// JoinParams is the interface for joint-specific parameters.
type JoinParams interface {
	joinParams()
}

// ButtJoinParams holds parameters for a butt join.
// Butt joins add no interlocking geometry; the bond's strength comes
// entirely from the fasteners and/or adhesive applied at the join.
type ButtJoinParams struct {
	GlueUp bool `json:"glue_up"`
}

func (ButtJoinParams) joinParams() {}

// ---------------------------------------------------------------------------
// Drill
// ---------------------------------------------------------------------------

// DrillData specifies a subtractive bore feature on a primitive.
type DrillData struct {
	TargetPart  NodeID  `json:"target_part"`
	Face        FaceID  `json:"face"`
	Position    Vec3    `json:"position"`              // on-face local coords
	Diameter    float64 `json:"diameter"`              // mm
	Depth       float64 `json:"depth"`                 // mm, 0 = through
	Countersink *float64 `json:"countersink,omitempty"` // countersink diameter
	CounterBore *float64 `json:"counterbore,omitempty"` // counterbore diameter
}

func (DrillData) nodeData() {}

// ---------------------------------------------------------------------------
// Fastener
// ---------------------------------------------------------------------------

// FastenerKind enumerates the mechanical fastener types a fastener node
// can place at a join.
type FastenerKind int

const (
	FastenerScrew FastenerKind = iota
	FastenerPin
	FastenerKeyedPin
	FastenerBolt
)

func (k FastenerKind) String() string {
	switch k {
	case FastenerScrew:
		return "screw"
	case FastenerPin:
		return "pin"
	case FastenerKeyedPin:
		return "keyed-pin"
	case FastenerBolt:
		return "bolt"
	default:
		return "unknown"
	}
}

// FastenerData specifies a single fastener placed at a join.
type FastenerData struct {
	Kind             FastenerKind `json:"kind"`
	Diameter         float64      `json:"diameter"`       // shank diameter mm
	Length           float64      `json:"length"`         // total length mm
	HeadDia          float64      `json:"head_dia"`       // head diameter mm
	Position         Vec3         `json:"position"`       // relative to the join
	JoinRef          NodeID       `json:"join_ref"`       // which join this belongs to
	PilotHoleDia     float64      `json:"pilot_hole_dia,omitempty"`
	ClearanceHoleDia float64      `json:"clearance_hole_dia,omitempty"`
}

func (FastenerData) nodeData() {}
