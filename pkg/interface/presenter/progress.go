package presenter

import (
	"io"

	"github.com/WangYihang/Domain-Reputation-Checker/pkg/domain/entity"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Progress renders a progress bar while domains are checked.
// It implements application.ProgressObserver.
type Progress struct {
	progress *mpb.Progress
	bar      *mpb.Bar
	output   io.Writer
	width    int
}

// NewProgress creates a progress bar writing to w
func NewProgress(w io.Writer, width int) *Progress {
	return &Progress{output: w, width: width}
}

// OnStart creates the bar for total domains
func (p *Progress) OnStart(total int) {
	p.progress = mpb.New(
		mpb.WithOutput(p.output),
		mpb.WithWidth(p.width/2),
	)
	p.bar = p.progress.AddBar(int64(total),
		mpb.BarRemoveOnComplete(),
		mpb.PrependDecorators(
			decor.Name("checking", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("[%d / %d]", decor.WCSyncWidth),
			decor.Percentage(decor.WCSyncSpace),
			decor.OnComplete(
				decor.AverageETA(decor.ET_STYLE_GO, decor.WCSyncSpace), "done",
			),
		),
	)
}

// OnDomainChecked advances the bar
func (p *Progress) OnDomainChecked(report entity.DomainReport) {
	if p.bar != nil {
		p.bar.Increment()
	}
}

// OnFinish waits for the bar to render its final state
func (p *Progress) OnFinish() {
	if p.progress == nil {
		return
	}
	if !p.bar.Completed() {
		p.bar.Abort(true)
	}
	p.progress.Wait()
}
