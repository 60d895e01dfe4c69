// Package status implements the status vocabulary of a tracked component.
//
// A Status is a tagged value with two shapes:
//   - a base stage (NEW, PROD_INTERNAL, PROD_EXTERNAL, BUILT, READY_FOR_DELIVERY,
//     SHIPPED, or any other code read back from storage)
//   - a treatment stage: a treatment name plus a Phase (PREP, IN_PROGRESS, ARRIVED)
//
// Raw strings only cross this package through Parse and Status.Code. Treatment
// stages serialize as "4:<treatment>:<PHASE>", the format shared with every
// other client reading the same column, so it must never change.
//
// Rank gives a total order used for sorting lists of components and for the
// auto-advance "already at or past READY_FOR_DELIVERY" check. It never decides
// which statuses a component may move to; the component package does that.
package status
