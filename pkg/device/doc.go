// Package device implements a software SIMT accelerator.
//
// Work is submitted to a Queue as a Kernel over an NDRange of thread groups.
// Every group runs on one compute unit (a worker of a parallel.WorkerPool)
// as GroupWidth goroutines, the work-items. Work-items of a group share
// group-local memory, a reusable barrier and group reductions; groups never
// synchronize with each other.
//
// Each submission returns an Event carrying the start and end timestamps of
// the command. A panicking work-item aborts its group: the group barrier is
// broken so no sibling blocks forever, and Event.Wait reports a *DeviceError.
//
// Basic usage:
//
//	q, err := device.NewQueue(device.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	defer q.Close()
//
//	ev, err := device.Submit(ctx, q, device.NDRange{Groups: 4, GroupWidth: 32}, kernel)
//	if err != nil {
//	    return err
//	}
//	if err := ev.Wait(); err != nil {
//	    return err
//	}
package device
