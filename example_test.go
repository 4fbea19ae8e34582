package pool_test

import (
	"fmt"

	"github.com/valyala/bytebufferpool"

	"github.com/host6/pool"
)

type counter struct {
	value int
}

func (c *counter) Reset() { c.value = 0 }

func Example() {
	p := pool.NewPool(func() *counter { return &counter{} })

	c1 := p.Get()
	c1.Item().value++
	fmt.Println(c1.Item().value)
	c1.Release()

	c2 := p.Get()
	defer c2.Release()
	fmt.Println(c2.Item().value)

	// Output:
	// 1
	// 0
}

func ExampleIPool_Use() {
	p := pool.NewPoolOf[bytebufferpool.ByteBuffer]()

	for _, name := range []string{"first", "second"} {
		err := p.Use(func(bb *bytebufferpool.ByteBuffer) error {
			// bb is empty here: the previous content is reset on release
			_, err := bb.WriteString("hello, " + name)
			fmt.Println(bb.String())
			return err
		})
		if err != nil {
			panic(err)
		}
	}

	// Output:
	// hello, first
	// hello, second
}
