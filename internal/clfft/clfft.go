//go:build opencl

package clfft

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"

	"github.com/Faultbox/midgard-ocean/pkg/ocean"
)

const kernelSource = `__kernel void butterfly(
    const int n,
    const int stage,
    const int vertical,
    __global const float4* twiddles,
    __global const float2* src,
    __global float2* dst)
{
    int idx = get_global_id(0);
    if (idx >= n * n) {
        return;
    }
    int x = idx % n;
    int y = idx / n;
    float4 tw;
    float2 a;
    float2 b;
    if (vertical) {
        tw = twiddles[stage * n + y];
        a = src[(int)tw.z * n + x];
        b = src[(int)tw.w * n + x];
    } else {
        tw = twiddles[stage * n + x];
        a = src[y * n + (int)tw.z];
        b = src[y * n + (int)tw.w];
    }
    dst[idx] = (float2)(a.x + tw.x * b.x - tw.y * b.y,
                        a.y + tw.x * b.y + tw.y * b.x);
}

__kernel void invert(
    const int n,
    const float scale,
    __global const float2* src,
    __global float* heights)
{
    int idx = get_global_id(0);
    if (idx >= n * n) {
        return;
    }
    int x = idx % n;
    int y = idx / n;
    float h = src[idx].x * scale;
    heights[idx] = ((x + y) & 1) ? -h : h;
}`

// Inverter runs the butterfly passes and the inversion pass on the device.
// Only the evolved spectrum goes up and only the heights come back each
// call; the twiddle table is uploaded once.
type Inverter struct {
	n      int
	stages int

	context   *cl.Context
	queue     *cl.CommandQueue
	program   *cl.Program
	butterfly *cl.Kernel
	invert    *cl.Kernel

	twiddleBuf *cl.MemObject
	srcBuf     *cl.MemObject
	pingpong   [2]*cl.MemObject
	heightBuf  *cl.MemObject

	deviceName string
}

// Factory adapts New to ocean.InverterFactory.
func Factory(t *ocean.TwiddleTable) (ocean.Inverter, error) {
	inv, err := New(t)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// New picks the first GPU, falling back to the first CPU device, and
// prepares buffers for t.N.
func New(t *ocean.TwiddleTable) (*Inverter, error) {
	device, err := pickDevice()
	if err != nil {
		return nil, err
	}

	inv := &Inverter{n: t.N, stages: t.Stages, deviceName: device.Name()}
	if err := inv.init(device, t); err != nil {
		inv.Close()
		return nil, err
	}
	return inv, nil
}

func pickDevice() (*cl.Device, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms"
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, msg, err)
	}
	for _, kind := range []cl.DeviceType{cl.DeviceTypeGPU, cl.DeviceTypeCPU} {
		for _, p := range platforms {
			devices, derr := p.GetDevices(kind)
			if derr != nil && derr != cl.ErrDeviceNotFound {
				continue
			}
			if len(devices) > 0 {
				return devices[0], nil
			}
		}
	}
	return nil, fmt.Errorf("%w: no suitable OpenCL devices found", ErrUnavailable)
}

func (inv *Inverter) init(device *cl.Device, t *ocean.TwiddleTable) error {
	var err error
	if inv.context, err = cl.CreateContext([]*cl.Device{device}); err != nil {
		return fmt.Errorf("creating OpenCL context: %w", err)
	}
	if inv.queue, err = inv.context.CreateCommandQueue(device, 0); err != nil {
		return fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	if inv.program, err = inv.context.CreateProgramWithSource([]string{kernelSource}); err != nil {
		return fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := inv.program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		var buildErr cl.BuildError
		if errors.As(err, &buildErr) {
			return fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return fmt.Errorf("building OpenCL program: %w", err)
	}
	if inv.butterfly, err = inv.program.CreateKernel("butterfly"); err != nil {
		return fmt.Errorf("creating butterfly kernel: %w", err)
	}
	if inv.invert, err = inv.program.CreateKernel("invert"); err != nil {
		return fmt.Errorf("creating invert kernel: %w", err)
	}

	floatSize := int(unsafe.Sizeof(float32(0)))
	cells := t.N * t.N
	packed := t.Packed()

	if inv.twiddleBuf, err = inv.context.CreateEmptyBuffer(cl.MemReadOnly, len(packed)*floatSize); err != nil {
		return fmt.Errorf("allocating twiddle buffer: %w", err)
	}
	if inv.srcBuf, err = inv.context.CreateEmptyBuffer(cl.MemReadOnly, 2*cells*floatSize); err != nil {
		return fmt.Errorf("allocating spectrum buffer: %w", err)
	}
	for i := range inv.pingpong {
		if inv.pingpong[i], err = inv.context.CreateEmptyBuffer(cl.MemReadWrite, 2*cells*floatSize); err != nil {
			return fmt.Errorf("allocating pingpong buffer %d: %w", i, err)
		}
	}
	if inv.heightBuf, err = inv.context.CreateEmptyBuffer(cl.MemWriteOnly, cells*floatSize); err != nil {
		return fmt.Errorf("allocating height buffer: %w", err)
	}

	if _, err := inv.queue.EnqueueWriteBufferFloat32(inv.twiddleBuf, true, 0, packed, nil); err != nil {
		return fmt.Errorf("writing twiddle buffer: %w", err)
	}
	return nil
}

// Invert implements ocean.Inverter.
func (inv *Inverter) Invert(src *ocean.ComplexField, dst *ocean.HeightField) error {
	if inv.queue == nil {
		return errors.New("clfft: inverter closed")
	}
	if src.N != inv.n || dst.N != inv.n {
		return fmt.Errorf("clfft: size mismatch: inverter %d, source %d, destination %d", inv.n, src.N, dst.N)
	}

	if _, err := inv.queue.EnqueueWriteBufferFloat32(inv.srcBuf, false, 0, floats(src.Cells), nil); err != nil {
		return fmt.Errorf("writing spectrum buffer: %w", err)
	}

	global := []int{inv.n * inv.n}
	pp := 0
	for vertical := int32(0); vertical < 2; vertical++ {
		for stage := 0; stage < inv.stages; stage++ {
			in := inv.pingpong[pp]
			if stage == 0 && vertical == 0 {
				in = inv.srcBuf
			}
			if err := inv.butterfly.SetArgs(
				int32(inv.n),
				int32(stage),
				vertical,
				inv.twiddleBuf,
				in,
				inv.pingpong[1-pp],
			); err != nil {
				return fmt.Errorf("setting butterfly arguments: %w", err)
			}
			if _, err := inv.queue.EnqueueNDRangeKernel(inv.butterfly, nil, global, nil, nil); err != nil {
				return fmt.Errorf("enqueueing butterfly stage %d: %w", stage, err)
			}
			pp = 1 - pp
		}
	}

	if err := inv.invert.SetArgs(
		int32(inv.n),
		1/float32(inv.n*inv.n),
		inv.pingpong[pp],
		inv.heightBuf,
	); err != nil {
		return fmt.Errorf("setting invert arguments: %w", err)
	}
	if _, err := inv.queue.EnqueueNDRangeKernel(inv.invert, nil, global, nil, nil); err != nil {
		return fmt.Errorf("enqueueing invert: %w", err)
	}
	if _, err := inv.queue.EnqueueReadBufferFloat32(inv.heightBuf, true, 0, dst.Heights, nil); err != nil {
		return fmt.Errorf("reading height buffer: %w", err)
	}
	return nil
}

// Close releases every device object. It is safe to call more than once.
func (inv *Inverter) Close() error {
	for _, buf := range []**cl.MemObject{&inv.heightBuf, &inv.pingpong[1], &inv.pingpong[0], &inv.srcBuf, &inv.twiddleBuf} {
		if *buf != nil {
			(*buf).Release()
			*buf = nil
		}
	}
	for _, k := range []**cl.Kernel{&inv.invert, &inv.butterfly} {
		if *k != nil {
			(*k).Release()
			*k = nil
		}
	}
	if inv.program != nil {
		inv.program.Release()
		inv.program = nil
	}
	if inv.queue != nil {
		inv.queue.Release()
		inv.queue = nil
	}
	if inv.context != nil {
		inv.context.Release()
		inv.context = nil
	}
	return nil
}

// DeviceName reports the device the inverter runs on.
func (inv *Inverter) DeviceName() string {
	return inv.deviceName
}

// floats views the complex cells as interleaved (re, im) pairs.
func floats(cells []ocean.Complex) []float32 {
	if len(cells) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&cells[0])), 2*len(cells))
}
