// Package parcel contains the Parcel aggregate root and its value objects:
// the lifecycle Status state machine, the TrackingCode public identifier, the
// Fee breakdown, party snapshots, and the append-only status log.
//
// The aggregate enforces the lifecycle rules of the system: status changes
// follow a fixed transition graph, the three administrative gates (flag,
// hold, block) suspend lifecycle mutation while set, and every mutation
// appends exactly one entry to the audit log.
package parcel
