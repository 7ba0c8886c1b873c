package session

import (
	"fmt"
	"strconv"

	"github.com/KaramelBytes/csvexplore-cli/internal/analysis"
	"github.com/KaramelBytes/csvexplore-cli/internal/dataset"
	"github.com/KaramelBytes/csvexplore-cli/internal/display"
	"github.com/KaramelBytes/csvexplore-cli/internal/plot"
)

type handler struct {
	column bool
	run    func(ds *dataset.Dataset, column string) (display.Output, error)
}

// Dispatcher maps commands to computations over the store's current dataset.
type Dispatcher struct {
	store    *Store
	opt      Options
	handlers map[Command]handler
}

// NewDispatcher registers the fixed command set.
func NewDispatcher(store *Store, opt Options) *Dispatcher {
	d := &Dispatcher{store: store, opt: opt}
	d.handlers = map[Command]handler{
		CmdHead:          {run: d.head},
		CmdTail:          {run: d.tail},
		CmdDtypes:        {run: d.dtypes},
		CmdDescribe:      {run: d.describe},
		CmdMissingValues: {run: d.missing},
		CmdCorrelation:   {run: d.correlation},
		CmdValueCounts:   {column: true, run: d.valueCounts},
		CmdUniqueValues:  {column: true, run: d.uniqueValues},
		CmdHistogram:     {column: true, run: d.histogram},
		CmdBoxplot:       {column: true, run: d.boxplot},
		CmdInfo:          {run: d.info},
		CmdProfile:       {run: d.profile},
	}
	return d
}

// Dispatch runs cmd against the current dataset. Column is ignored by
// commands that do not take one.
func (d *Dispatcher) Dispatch(cmd Command, column string) display.Output {
	ds, ok := d.store.Current()
	if !ok {
		return display.Message(string(cmd), NotReadyMessage)
	}
	h, ok := d.handlers[cmd]
	if !ok {
		return display.Failure(string(cmd), &UnknownCommandError{Name: string(cmd)})
	}
	if h.column {
		if _, err := d.store.Resolve(column); err != nil {
			return outcome(cmd, err)
		}
	}
	return d.invoke(cmd, h, ds, column)
}

// DispatchRef is Dispatch with a column reference that must belong to the
// current dataset generation.
func (d *Dispatcher) DispatchRef(cmd Command, ref ColumnRef) display.Output {
	ds, ok := d.store.Current()
	if !ok {
		return display.Message(string(cmd), NotReadyMessage)
	}
	h, ok := d.handlers[cmd]
	if !ok {
		return display.Failure(string(cmd), &UnknownCommandError{Name: string(cmd)})
	}
	if h.column {
		if err := d.store.Check(ref); err != nil {
			return outcome(cmd, err)
		}
	}
	return d.invoke(cmd, h, ds, ref.Name)
}

func (d *Dispatcher) invoke(cmd Command, h handler, ds *dataset.Dataset, column string) (out display.Output) {
	defer func() {
		if r := recover(); r != nil {
			d.opt.debugf("%s panicked: %v", cmd, r)
			out = display.Failure(string(cmd), fmt.Errorf("%s failed: %v", cmd, r))
		}
	}()
	out, err := h.run(ds, column)
	if err != nil {
		d.opt.debugf("%s: %v", cmd, err)
		return outcome(cmd, err)
	}
	out.Command = string(cmd)
	return out
}

func outcome(cmd Command, err error) display.Output {
	if msg, ok := UserMessage(err); ok {
		return display.Message(string(cmd), msg)
	}
	return display.Failure(string(cmd), err)
}

func (d *Dispatcher) head(ds *dataset.Dataset, _ string) (display.Output, error) {
	return display.Output{Table: analysis.Head(ds, d.opt.HeadRows)}, nil
}

func (d *Dispatcher) tail(ds *dataset.Dataset, _ string) (display.Output, error) {
	return display.Output{Table: analysis.Tail(ds, d.opt.HeadRows)}, nil
}

func (d *Dispatcher) dtypes(ds *dataset.Dataset, _ string) (display.Output, error) {
	return display.Output{Table: analysis.DtypesTable(analysis.Dtypes(ds))}, nil
}

func (d *Dispatcher) describe(ds *dataset.Dataset, _ string) (display.Output, error) {
	return display.Output{Table: analysis.Describe(ds).Table()}, nil
}

func (d *Dispatcher) missing(ds *dataset.Dataset, _ string) (display.Output, error) {
	return display.Output{Table: analysis.MissingTable(analysis.MissingValues(ds))}, nil
}

func (d *Dispatcher) correlation(ds *dataset.Dataset, _ string) (display.Output, error) {
	m := analysis.Correlation(ds)
	if m == nil {
		return display.Output{}, ErrEmptyNumericSet
	}
	img, err := plot.Heatmap(m, d.opt.Plot)
	if err != nil {
		return display.Output{}, err
	}
	return display.Output{Table: m.Table(), Image: img}, nil
}

func (d *Dispatcher) valueCounts(ds *dataset.Dataset, column string) (display.Output, error) {
	counts, err := analysis.ValueCounts(ds, column)
	if err != nil {
		return display.Output{}, err
	}
	return display.Output{Table: analysis.CountsTable(column, counts)}, nil
}

func (d *Dispatcher) uniqueValues(ds *dataset.Dataset, column string) (display.Output, error) {
	values, err := analysis.UniqueValues(ds, column)
	if err != nil {
		return display.Output{}, err
	}
	t := &analysis.Table{Columns: []string{column}}
	for i, v := range values {
		t.Index = append(t.Index, strconv.Itoa(i))
		t.Rows = append(t.Rows, []string{v})
	}
	return display.Output{Message: fmt.Sprintf(uniqueValuesFormat, column), Table: t}, nil
}

func (d *Dispatcher) histogram(ds *dataset.Dataset, column string) (display.Output, error) {
	c, err := ds.Column(column)
	if err != nil {
		return display.Output{}, err
	}
	var img *plot.Image
	if c.Kind.Numeric() {
		img, err = plot.Histogram(column, c.Floats(), d.opt.Plot)
	} else {
		var counts []analysis.CategoryCount
		if counts, err = analysis.ValueCounts(ds, column); err == nil {
			img, err = plot.CategoryHistogram(column, counts, d.opt.Plot)
		}
	}
	if err != nil {
		return display.Output{}, err
	}
	return display.Output{Image: img}, nil
}

func (d *Dispatcher) boxplot(ds *dataset.Dataset, column string) (display.Output, error) {
	c, err := ds.Column(column)
	if err != nil {
		return display.Output{}, err
	}
	if !c.Kind.Numeric() {
		return display.Output{}, &UnsupportedColumnTypeError{Column: column, Kind: c.Kind}
	}
	img, err := plot.Boxplot(column, c.Floats(), d.opt.Plot)
	if err != nil {
		return display.Output{}, err
	}
	return display.Output{Image: img}, nil
}

func (d *Dispatcher) info(ds *dataset.Dataset, _ string) (display.Output, error) {
	return display.Output{Table: analysis.Info(ds)}, nil
}

func (d *Dispatcher) profile(ds *dataset.Dataset, _ string) (display.Output, error) {
	return display.Output{Message: analysis.Profile(ds, d.opt.Profile).Markdown()}, nil
}
