package common

import (
	"fmt"
	"sync"
	"time"

	"github.com/freakmaxi/kertish-serve/basics/terminal"
)

var spinnerChars = []byte{'/', '-', '\\', '|'}

type animation struct {
	waitGroup sync.WaitGroup

	stop   chan bool
	cancel chan bool

	output terminal.Output
	header string

	progressMutex sync.Mutex
	progress      string

	// width of the last rendered frame, owned by the spinner goroutine after Start
	printed int
}

func NewAnimation(output terminal.Output, header string) *animation {
	return &animation{
		waitGroup: sync.WaitGroup{},
		stop:      make(chan bool),
		cancel:    make(chan bool),
		output:    output,
		header:    header,
	}
}

func (p *animation) Start() {
	p.output.Printf("%s ", p.header)
	p.render('|')

	p.waitGroup.Add(1)
	go func() {
		defer p.waitGroup.Done()

		i := 0
		for {
			select {
			case <-p.stop:
				p.finish("ok.")
				return
			case <-p.cancel:
				p.finish("failed.")
				return
			case <-time.After(time.Millisecond * 100):
				p.render(spinnerChars[i%len(spinnerChars)])
			}
			i++
		}
	}()
}

// Progress updates the completed part count shown in front of the spinner
func (p *animation) Progress(completed int, total int) {
	p.progressMutex.Lock()
	defer p.progressMutex.Unlock()

	p.progress = fmt.Sprintf("[%d/%d] ", completed, total)
}

func (p *animation) currentProgress() string {
	p.progressMutex.Lock()
	defer p.progressMutex.Unlock()

	return p.progress
}

func (p *animation) render(char byte) {
	p.output.Remove(p.printed)

	column := p.output.Column()
	p.output.Printf("%s%c", p.currentProgress(), char)
	p.printed = p.output.Column() - column
}

func (p *animation) finish(result string) {
	p.output.Remove(p.printed)
	p.output.Println(fmt.Sprintf("%s%s", p.currentProgress(), result))
}

func (p *animation) Stop() {
	p.stop <- true
	p.waitGroup.Wait()
}

func (p *animation) Cancel() {
	p.cancel <- true
	p.waitGroup.Wait()
}
