package outline

// Stage is one named step of a Pipeline. Apply rewrites the working outline
// in place; it must never retain or mutate the pipeline's source outline.
type Stage interface {
	Name() string
	Apply(work *Outline)
}

// AffineStage applies a fixed affine transform.
type AffineStage struct {
	Label  string
	Matrix Transform
}

// NewAffineStage creates an affine stage with the given name.
func NewAffineStage(name string, m Transform) *AffineStage {
	return &AffineStage{Label: name, Matrix: m}
}

// Name implements Stage.
func (s *AffineStage) Name() string { return s.Label }

// Apply implements Stage.
func (s *AffineStage) Apply(work *Outline) {
	if s.Matrix.IsIdentity() {
		return
	}
	work.Transform(s.Matrix)
}

// Pipeline is an ordered list of stages applied left to right over a single
// working outline. Stages are enabled or disabled per run; the pipeline and
// its VertexSource are reused from glyph to glyph.
//
// A Pipeline is not safe for concurrent use.
type Pipeline struct {
	stages  []Stage
	enabled []bool
	work    Outline
	vs      VertexSource
}

// NewPipeline creates a pipeline with all given stages enabled.
func NewPipeline(stages ...Stage) *Pipeline {
	p := &Pipeline{}
	for _, s := range stages {
		p.Add(s)
	}
	return p
}

// Add appends an enabled stage.
func (p *Pipeline) Add(s Stage) {
	p.stages = append(p.stages, s)
	p.enabled = append(p.enabled, true)
}

// SetEnabled toggles the stage with the given name.
// Returns false if no such stage exists.
func (p *Pipeline) SetEnabled(name string, on bool) bool {
	for i, s := range p.stages {
		if s.Name() == name {
			p.enabled[i] = on
			return true
		}
	}
	return false
}

// Enabled reports whether the named stage is enabled.
func (p *Pipeline) Enabled(name string) bool {
	for i, s := range p.stages {
		if s.Name() == name {
			return p.enabled[i]
		}
	}
	return false
}

// Active returns the names of the enabled stages in application order.
func (p *Pipeline) Active() []string {
	names := make([]string, 0, len(p.stages))
	for i, s := range p.stages {
		if p.enabled[i] {
			names = append(names, s.Name())
		}
	}
	return names
}

// Run copies src into the working outline, applies every enabled stage in
// order and returns a rewound vertex source over the result. src is not
// modified. The returned source is valid until the next call to Run.
func (p *Pipeline) Run(src *Outline) *VertexSource {
	p.work.CopyFrom(src)
	for i, s := range p.stages {
		if p.enabled[i] {
			s.Apply(&p.work)
		}
	}
	p.vs.outline = &p.work
	p.vs.Rewind()
	return &p.vs
}

// VertexSource produces the segments of an outline one at a time.
// It is restartable with Rewind.
type VertexSource struct {
	outline *Outline
	pos     int
}

// NewVertexSource returns a vertex source over o.
func NewVertexSource(o *Outline) *VertexSource {
	return &VertexSource{outline: o}
}

// Rewind restarts iteration from the first segment.
func (vs *VertexSource) Rewind() {
	vs.pos = 0
}

// Next returns the next segment, or false once the outline is exhausted.
func (vs *VertexSource) Next() (Segment, bool) {
	if vs.outline == nil || vs.pos >= len(vs.outline.Segments) {
		return Segment{}, false
	}
	seg := vs.outline.Segments[vs.pos]
	vs.pos++
	return seg, true
}

// Outline returns the outline being iterated.
func (vs *VertexSource) Outline() *Outline {
	return vs.outline
}
