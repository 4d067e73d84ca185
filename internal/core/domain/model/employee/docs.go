// Package employee models the back-office staff as seen by order fulfillment: who may
// approve orders, who may deliver them, and in which region couriers work.
//
// Employees are administered elsewhere; this package only reads and checks them.
package employee
