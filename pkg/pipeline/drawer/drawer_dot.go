package drawer

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"text/template"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/askiada/go-aggregation/pkg/pipeline/measure"
)

// DOTDrawer renders the pipeline graph in the Graphviz DOT language.
type DOTDrawer struct {
	graph      graph.Graph[string, string]
	operators  map[string]string
	attributes map[string]string
}

type DOTOption func(d *DOTDrawer)

// GraphAttribute sets a graph level attribute, e.g. rankdir="LR".
func GraphAttribute(key, value string) DOTOption {
	return func(d *DOTDrawer) {
		d.attributes[key] = value
	}
}

// NewDOTDrawer creates a new DOT drawer.
func NewDOTDrawer(opts ...DOTOption) *DOTDrawer {
	d := &DOTDrawer{
		graph:      graph.New(graph.StringHash, graph.Directed()),
		operators:  make(map[string]string),
		attributes: make(map[string]string),
	}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

// AddStage adds a stage to the pipeline graph.
func (d *DOTDrawer) AddStage(name, operator string) error {
	err := d.graph.AddVertex(name, graph.VertexAttribute("shape", "box"))
	if err != nil {
		return errors.Wrap(err, "unable to add vertex")
	}

	d.operators[name] = operator

	return nil
}

// AddLink adds a link between parent and children stages.
func (d *DOTDrawer) AddLink(parentName, childrenName string) error {
	err := d.graph.AddEdge(parentName, childrenName)
	if err != nil {
		return errors.Wrapf(err, "unable to add edge from %s to %s", parentName, childrenName)
	}

	return nil
}

// Draw writes the DOT description of the pipeline graph to wrt.
func (d *DOTDrawer) Draw(wrt io.Writer) error {
	err := dot(d.graph, d.attributes, wrt)
	if err != nil {
		return errors.Wrap(err, "unable to render dot")
	}

	return nil
}

const maxRGB = 240

// AddMeasure colours every stage from blue (DefaultWeight) to red (MaxWeight)
// and labels it with its weight and average serialized size.
func (d *DOTDrawer) AddMeasure(msr measure.Measure) error {
	minValue := measure.DefaultWeight
	maxValue := measure.MaxWeight()

	weightColours := make(map[int]string)

	for _, mt := range msr.AllMetrics() {
		if _, ok := weightColours[mt.Weight()]; ok {
			continue
		}

		fraction := 0.0
		if maxValue > minValue {
			fraction = float64(mt.Weight()-minValue) / float64(maxValue-minValue)
		}

		fraction = math.Max(0, math.Min(1, fraction))

		red := maxRGB * fraction
		blue := -maxRGB*fraction + maxRGB

		colour, err := colors.RGB(uint8(red), 0, uint8(blue)) //nolint
		if err != nil {
			return errors.Wrap(err, "unable to get colour")
		}

		weightColours[mt.Weight()] = colour.ToHEX().String()
	}

	return d.updateMetrics(msr, weightColours)
}

func (d *DOTDrawer) updateMetrics(msr measure.Measure, weightColours map[int]string) error {
	for name, operator := range d.operators {
		mt := msr.GetMetric(operator)
		if mt == nil {
			continue
		}

		_, properties, err := d.graph.VertexWithProperties(name)
		if err != nil {
			return errors.Wrap(err, "unable to get vertex properties")
		}

		avgSize := 0
		if mt.Count() > 0 {
			avgSize = mt.TotalSize() / mt.Count()
		}

		properties.Attributes["xlabel"] = "weight " + strconv.Itoa(mt.Weight()) + ", ~" + strconv.Itoa(avgSize) + " chars"
		properties.Attributes["color"] = weightColours[mt.Weight()]
	}

	return nil
}

//nolint:lll //this is a template
const dotTemplate = `strict {{.GraphType}} {
	{{range $k, $v := .Attributes}}
		{{$k}}="{{$v}}";
	{{end}}
	{{range $s := .Statements}}
		"{{.Source}}" {{if .Target}}{{$.EdgeOperator}} "{{.Target}}" [ {{range $k, $v := .EdgeAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.EdgeWeight}} ]{{else}}[ {{range $k, $v := .HTMLAttributes}}{{$k}}={{$v}}, {{end}} {{range $k, $v := .SourceAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.SourceWeight}} ]{{end}};
	{{end}}
	}
	`

type description struct {
	GraphType    string
	Attributes   map[string]string
	EdgeOperator string
	Statements   []statement
}

type statement struct {
	Source           string
	Target           string
	SourceAttributes map[string]string
	HTMLAttributes   map[string]string
	EdgeAttributes   map[string]string
	SourceWeight     int
	EdgeWeight       int
}

func dot(gra graph.Graph[string, string], attributes map[string]string, wrt io.Writer) error {
	desc, err := generateDOT(gra, attributes)
	if err != nil {
		return fmt.Errorf("failed to generate DOT description: %w", err)
	}

	return renderDOT(wrt, desc)
}

func generateDOT(gra graph.Graph[string, string], attributes map[string]string) (description, error) {
	desc := description{
		GraphType:    "graph",
		Attributes:   make(map[string]string, len(attributes)),
		EdgeOperator: "--",
		Statements:   make([]statement, 0),
	}

	for k, v := range attributes {
		desc.Attributes[k] = v
	}

	if gra.Traits().IsDirected {
		desc.GraphType = "digraph"
		desc.EdgeOperator = "->"
	}

	adjacencyMap, err := gra.AdjacencyMap()
	if err != nil {
		return desc, errors.Wrap(err, "unable to get adjacency map")
	}

	vertices := make([]string, 0, len(adjacencyMap))
	for vertex := range adjacencyMap {
		vertices = append(vertices, vertex)
	}

	sort.Strings(vertices)

	for _, vertex := range vertices {
		_, sourceProperties, err := gra.VertexWithProperties(vertex)
		if err != nil {
			return desc, errors.Wrap(err, "unable to get vertex properties")
		}

		htmlAttributes := make(map[string]string)
		sourceAttributes := make(map[string]string, len(sourceProperties.Attributes))

		for k, v := range sourceProperties.Attributes {
			sourceAttributes[k] = v
		}

		if xlabel, ok := sourceAttributes["xlabel"]; ok {
			htmlAttributes["label"] = fmt.Sprintf(`<%s <BR /> <FONT POINT-SIZE="12">%s</FONT>>`, vertex, xlabel)

			delete(sourceAttributes, "xlabel")
		}

		stmt := statement{
			Source:           vertex,
			SourceWeight:     sourceProperties.Weight,
			SourceAttributes: sourceAttributes,
			HTMLAttributes:   htmlAttributes,
		}
		desc.Statements = append(desc.Statements, stmt)

		targets := make([]string, 0, len(adjacencyMap[vertex]))
		for target := range adjacencyMap[vertex] {
			targets = append(targets, target)
		}

		sort.Strings(targets)

		for _, target := range targets {
			edge := adjacencyMap[vertex][target]
			stmt := statement{
				Source:         vertex,
				Target:         target,
				EdgeWeight:     edge.Properties.Weight,
				EdgeAttributes: edge.Properties.Attributes,
			}
			desc.Statements = append(desc.Statements, stmt)
		}
	}

	return desc, nil
}

func renderDOT(wrt io.Writer, desc description) error {
	tpl, err := template.New("dotTemplate").Parse(dotTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	err = tpl.Execute(wrt, desc)
	if err != nil {
		return errors.Wrap(err, "unable to execute template")
	}

	return nil
}

var _ Drawer = (*DOTDrawer)(nil)
