package node_test

import (
	"fmt"
	"map-caster/node"
)

func ExampleDealer() {
	var d node.Dealer

	user := node.NewDynamicModel("User", nil)
	group := node.NewDynamicModel("Group", nil)

	d.Needs(user)
	m, ok := d.NextNeeds()
	fmt.Println("user:", m.Name(), ok)

	_, ok = d.NextNeeds()
	fmt.Println("empty:", ok)

	d.Needs(user)
	_, ok = d.NextNeeds()
	fmt.Println("no duplicates:", ok)

	d.Needs(group)
	d.Needs(node.NewDynamicModel("Role", nil))
	_, ok = d.NextNeeds()
	fmt.Println("some model:", ok)

	_, ok = d.NextNeeds()
	fmt.Println("another model:", ok)

	_, ok = d.NextNeeds()
	fmt.Println("no more models:", ok)

	// Output:
	// user: User true
	// empty: false
	// no duplicates: false
	// some model: true
	// another model: true
	// no more models: false
}
