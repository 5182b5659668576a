// Package order holds the Order aggregate: the order status machine and the quantity
// ledger of its lines and fulfillments.
//
// Every purchased item is an order Line with a fixed quantity. A Fulfillment is one
// shipment; its FulfillmentLines reserve part of a line while the fulfillment is open
// and turn that reservation into fulfilled quantity when it is completed:
//
//	o.Confirm()
//	f, _ := o.NewFulfillment()      // Confirmed -> Processing
//	f.AddLine(line, 4)              // line reserved 4
//	f.Complete()                    // line fulfilled 4, order PartiallyFulfilled
//	o.Fulfill()                     // once every shipped line is fulfilled
//
// Lines that need no shipping (digital goods) are fulfilled on creation, and an order
// made only of such lines starts Fulfilled.
package order
