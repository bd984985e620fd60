package topology

import "fmt"

// Config groups the Clos fabric's address-space parameters.
type Config struct {
	NumSpines     int
	NumTors       int
	ServersPerTor int
	GPUsPerServer int
}

// Clos is a three-tier leaf-spine data-center fabric: servers under ToRs
// under spines. It derives GPU addressing and routes deterministically
// from integer GPU ids; it holds no mutable state.
type Clos struct {
	cfg Config
}

// New builds a Clos topology from the given config.
func New(cfg Config) *Clos {
	return &Clos{cfg: cfg}
}

// Server returns the server index that owns GPU g.
func (c *Clos) Server(g int) int {
	return g / c.cfg.GPUsPerServer
}

// Tor returns the ToR index that owns GPU g.
func (c *Clos) Tor(g int) int {
	return g / (c.cfg.ServersPerTor * c.cfg.GPUsPerServer)
}

// Route returns the ordered list of links traversed between GPU a and
// GPU b. Intra-ToR pairs route empty — intra-ToR contention is not
// tracked at the fabric level.
func (c *Clos) Route(a, b int) []Link {
	torA, torB := c.Tor(a), c.Tor(b)
	if torA == torB {
		return nil
	}
	serverA := int64(c.Server(a))
	spine := int(((1<<31 - 1) * serverA) % int64(c.cfg.NumSpines))
	return []Link{
		NewLink(torName(torA), spineName(spine)),
		NewLink(spineName(spine), torName(torB)),
	}
}

func torName(i int) string   { return fmt.Sprintf("ToR-%d", i) }
func spineName(i int) string { return fmt.Sprintf("Spine-%d", i) }

// GPUName returns the canonical string identifier for a GPU index.
func GPUName(g int) string { return fmt.Sprintf("GPU-%d", g) }
