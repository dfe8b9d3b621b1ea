package network_test

import (
	"fmt"

	"github.com/chenyukang/fiber-world/network"
)

// ExampleKeyOf shows that channel keys ignore endpoint order.
func ExampleKeyOf() {
	k := network.KeyOf(42, 7)
	a, b := k.Nodes()
	fmt.Println(k, a, b, k == network.KeyOf(7, 42))
	// Output:
	// 7-42 7 42 true
}

// ExampleTargetNodes prints the node budget for a few canvas sizes.
func ExampleTargetNodes() {
	p := network.DefaultParams()
	for _, sz := range [][2]float64{{300, 220}, {800, 600}, {1920, 1080}} {
		fmt.Println(network.TargetNodes(p, sz[0], sz[1]))
	}
	// Output:
	// 500
	// 1067
	// 1300
}

// ExampleBuild generates a small layout and checks the tier caps.
func ExampleBuild() {
	g, err := network.Build(640, 480, network.WithSeed(1337))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	ok := true
	for i := range g.Nodes {
		if g.Degree(i) > g.Cap(i) {
			ok = false
		}
	}
	fmt.Println(len(g.Hubs()), ok)
	// Output:
	// 5 true
}
