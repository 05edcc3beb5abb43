package obj

type groupState uint8

const (
	noActiveGroup groupState = iota
	activeGroup
)

// collector tracks the active group and accumulates corners and triangles.
// Finished groups stay in groups in the order they were opened; the active
// group is always the last element.
type collector struct {
	state        groupState
	groups       []Group
	object       string
	requireGroup bool

	cornerIDs []uint32 // Scratch for the face being added
}

// startGroup closes the active group, if any, and opens a new one whose
// corner ids start from zero.
func (c *collector) startGroup(name string) {
	c.groups = append(c.groups, Group{Name: name, Object: c.object})
	c.state = activeGroup
}

func (c *collector) active() *Group {
	return &c.groups[len(c.groups)-1]
}

// addFace appends one face's corners to the active group and triangulates it.
// Without an active group the implicit default group is opened, unless the
// collector requires an explicit group record.
func (c *collector) addFace(corners []IndexTriple) error {
	if c.state == noActiveGroup {
		if c.requireGroup {
			return ErrFaceWithoutGroup
		}
		c.startGroup("")
	}

	g := c.active()
	c.cornerIDs = c.cornerIDs[:0]
	for _, t := range corners {
		c.cornerIDs = append(c.cornerIDs, uint32(len(g.Corners)))
		g.Corners = append(g.Corners, t)
	}
	g.Triangles = fanTriangulate(g.Triangles, c.cornerIDs)
	return nil
}
