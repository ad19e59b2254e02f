package kinship_test

import (
	"fmt"

	"github.com/kinview/kinview/pkg/kinship"
)

func ExampleGraph_ShortestPath() {
	g := kinship.MustGraph(
		&kinship.Person{ID: "dad", Name: "Tom /Ash/", Sex: kinship.SexMale, Children: []string{"ann", "bob"}},
		&kinship.Person{ID: "ann", Name: "Ann /Ash/", Sex: kinship.SexFemale, Parents: []string{"dad"}},
		&kinship.Person{ID: "bob", Name: "Bob /Ash/", Sex: kinship.SexMale, Parents: []string{"dad"}},
	)

	path, err := g.ShortestPath("ann", "bob")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(path)
	fmt.Println(path.Hops(), "hops")
	// Output:
	// ann -P-> dad -C-> bob
	// 2 hops
}

func ExampleSplitName() {
	fore, sur := kinship.SplitName("Mary Ann /Smith/")
	fmt.Printf("%q %q\n", fore, sur)
	// Output: "Mary Ann" "Smith"
}
