package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"

	"github.com/freakmaxi/kertish-serve/basics/terminal"
	"github.com/freakmaxi/kertish-serve/fetch-tool/client"
	"github.com/freakmaxi/kertish-serve/fetch-tool/common"
)

var version = "XX.X.XXXX"

func main() {
	fc, err := defineFlags(os.Args)
	if err != nil {
		if err != flag.ErrHelp {
			fmt.Println(err.Error())
		}
		os.Exit(1)
	}

	if fc.version {
		fmt.Println(version)
		return
	}

	ctx, cancelFunc := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancelFunc()

	c := client.NewClient(fc.serveAddress, fc.prefix)
	output := terminal.NewStdOut()

	switch fc.command {
	case "size":
		size, err := c.Size(ctx, fc.params[0])
		if err != nil {
			fmt.Println(err.Error())
			os.Exit(2)
		}
		fmt.Printf("%d %s\n", size, sizeToString(size))
	case "get":
		if err := download(ctx, c, output, fc); err != nil {
			fmt.Println(err.Error())
			os.Exit(3)
		}
	}
}

func download(ctx context.Context, c *client.Client, output terminal.Output, fc *flagContainer) error {
	source, target := fc.params[0], fc.params[1]

	flags := os.O_RDWR | os.O_CREATE | os.O_EXCL
	if fc.overwrite {
		flags = os.O_RDWR | os.O_CREATE | os.O_TRUNC
	}

	file, err := os.OpenFile(target, flags, 0666)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%s is already exists, use --overwrite to replace", target)
		}
		return err
	}

	chunks := int32(0)

	anim := common.NewAnimation(output, fmt.Sprintf("downloading %s...", source))
	anim.Start()

	size, err := c.Download(ctx, source, fc.chunks, file, func(completed int, total int) {
		anim.Progress(completed, total)
		atomic.StoreInt32(&chunks, int32(total))
	})
	if err == nil {
		err = file.Truncate(size)
	}
	if errClose := file.Close(); err == nil {
		err = errClose
	}

	if err != nil {
		anim.Cancel()
		_ = os.Remove(target)
		return err
	}
	anim.Stop()

	fmt.Printf("%s (%s) is written to %s in %d chunks\n", source, sizeToString(size), target, atomic.LoadInt32(&chunks))
	return nil
}

func sizeToString(size int64) string {
	calculatedSize := size
	divideCount := 0
	for {
		calculatedSizeString := fmt.Sprintf("%d", calculatedSize)
		if len(calculatedSizeString) < 6 {
			break
		}
		calculatedSize /= 1024
		divideCount++
	}

	switch divideCount {
	case 0:
		return fmt.Sprintf("%db", calculatedSize)
	case 1:
		return fmt.Sprintf("%dkb", calculatedSize)
	case 2:
		return fmt.Sprintf("%dmb", calculatedSize)
	case 3:
		return fmt.Sprintf("%dgb", calculatedSize)
	}
	return "N/A"
}
