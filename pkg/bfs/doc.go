// Package bfs contains the traversal buffers and the three BFS kernels that
// run on the software device.
//
// Every kernel maps one graph of a batch to one thread group and writes the
// parent and distance of every node into the batch's result buffers:
//
//   - Naive scans every node of the graph each level and relaxes the nodes
//     sitting on the current level. It is the baseline and the oracle.
//   - Frontier keeps an explicit double-buffered queue of the current level
//     in group-local memory and expands it top-down.
//   - Mask keeps the frontier as a bitmask in group-local memory; every
//     unvisited node looks for a parent among its in-neighbors (bottom-up).
//
// Naive and Frontier claim a node by compare-and-swap on its distance slot
// and pick the smallest id among same-level predecessors as parent, so both
// produce identical, repeatable results. Mask records the first in-neighbor
// in CSR order that sits in the frontier.
//
// The variant is chosen by the caller; no kernel switches direction on its
// own.
package bfs
