package terminal

// Output interface is to handle the progress printing of the command line tools
type Output interface {
	Println(input string)
	Printf(format string, args ...interface{})
	Print(input string)
	Remove(size int)
	Column() int
}
