package graph

import "testing"

func placedBoard(g *DesignGraph, namePath string, dims Vec3, translate Vec3) NodeID {
	boardID := NewNodeID(namePath)
	placeID := NewNodeID(namePath + "/place")
	g.AddNode(&Node{
		ID: boardID, Kind: NodePrimitive, Name: namePath,
		Data: BoardData{PrimKind: PrimBoard, Dimensions: dims},
	})
	g.AddNode(&Node{
		ID:       placeID,
		Kind:     NodeTransform,
		Children: []NodeID{boardID},
		Data:     TransformData{Translation: &translate},
	})
	return placeID
}

func TestValidateSpatialOverlap_SeparatedBoardsNoWarning(t *testing.T) {
	g := New()

	groupID := NewNodeID("group/separated")
	a := placedBoard(g, "defpart/a", Vec3{400, 200, 19}, Vec3{})
	b := placedBoard(g, "defpart/b", Vec3{262, 200, 19}, Vec3{X: 500})

	g.AddNode(&Node{
		ID: groupID, Kind: NodeGroup, Name: "root",
		Children: []NodeID{a, b},
		Data:     GroupData{},
	})
	g.AddRoot(groupID)

	warnings := validateSpatialOverlap(g)
	if len(warnings) != 0 {
		t.Errorf("expected 0 overlap warnings, got %d", len(warnings))
		for _, w := range warnings {
			t.Logf("  warning: %s", w.Message)
		}
	}
}

func TestValidateSpatialOverlap_CoincidentBoardsWarn(t *testing.T) {
	g := New()

	groupID := NewNodeID("group/coincident")
	a := placedBoard(g, "defpart/a", Vec3{400, 200, 19}, Vec3{})
	b := placedBoard(g, "defpart/b", Vec3{262, 200, 19}, Vec3{})

	g.AddNode(&Node{
		ID: groupID, Kind: NodeGroup, Name: "root",
		Children: []NodeID{a, b},
		Data:     GroupData{},
	})
	g.AddRoot(groupID)

	warnings := validateSpatialOverlap(g)
	if len(warnings) == 0 {
		t.Fatal("expected an overlap warning for two boards centered at the same point")
	}
}

func TestValidateSpatialOverlap_TouchingFacesNoWarning(t *testing.T) {
	g := New()

	// Two 100-wide boards placed edge to edge along X: [-50,50] and [50,150].
	// They touch at x=50 with zero interior volume, which must not warn.
	groupID := NewNodeID("group/touching")
	a := placedBoard(g, "defpart/a", Vec3{100, 100, 19}, Vec3{})
	b := placedBoard(g, "defpart/b", Vec3{100, 100, 19}, Vec3{X: 100})

	g.AddNode(&Node{
		ID: groupID, Kind: NodeGroup, Name: "root",
		Children: []NodeID{a, b},
		Data:     GroupData{},
	})
	g.AddRoot(groupID)

	warnings := validateSpatialOverlap(g)
	if len(warnings) != 0 {
		t.Errorf("expected 0 warnings for edge-to-edge boards, got %d", len(warnings))
		for _, w := range warnings {
			t.Logf("  warning: %s", w.Message)
		}
	}
}

func TestValidateSpatialOverlap_SinglePartNoWarning(t *testing.T) {
	g := New()

	groupID := NewNodeID("group/single")
	a := placedBoard(g, "defpart/a", Vec3{400, 200, 19}, Vec3{})

	g.AddNode(&Node{
		ID: groupID, Kind: NodeGroup, Name: "root",
		Children: []NodeID{a},
		Data:     GroupData{},
	})
	g.AddRoot(groupID)

	warnings := validateSpatialOverlap(g)
	if len(warnings) != 0 {
		t.Errorf("expected 0 warnings for a single part, got %d", len(warnings))
	}
}
