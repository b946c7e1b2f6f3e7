//go:build vulkan && cgo && !headless

package vulkan

import (
	"errors"
	"fmt"

	vk "github.com/goki/vulkan"

	"geogl/internal/logger"
	"geogl/pkg/graphics"
)

const (
	colorFormat = vk.FormatR8g8b8a8Unorm
	depthFormat = vk.FormatD24UnormS8Uint
)

func init() {
	graphics.Register(graphics.APIVulkan, Open)
}

// Open loads the Vulkan loader, creates an instance and a logical device
// on the first physical device with a graphics queue.
func Open(log *logger.Logger) (graphics.Driver, error) {
	log = logger.OrDiscard(log)
	if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
		return nil, fmt.Errorf("vulkan: loader: %w", err)
	}
	if err := vk.Init(); err != nil {
		return nil, fmt.Errorf("vulkan: init: %w", err)
	}
	dev, err := newNativeDevice(log)
	if err != nil {
		return nil, err
	}
	drv, err := NewDriver(dev, log)
	if err != nil {
		return nil, err
	}
	return drv, nil
}

func newError(ret vk.Result) error {
	if ret == vk.Success {
		return nil
	}
	return fmt.Errorf("vulkan error: %s (%d)", vk.Error(ret).Error(), ret)
}

type nativeImage struct {
	image         vk.Image
	memory        vk.DeviceMemory
	width, height uint32
}

// nativeDevice maps opaque handles onto goki/vulkan objects
type nativeDevice struct {
	instance vk.Instance
	physDev  vk.PhysicalDevice
	device   vk.Device
	memProps vk.PhysicalDeviceMemoryProperties

	next         graphics.Handle
	images       map[graphics.Handle]*nativeImage
	views        map[graphics.Handle]vk.ImageView
	passes       map[graphics.Handle]vk.RenderPass
	framebuffers map[graphics.Handle]vk.Framebuffer
}

var _ Device = (*nativeDevice)(nil)

func newNativeDevice(log *logger.Logger) (*nativeDevice, error) {
	nd := &nativeDevice{
		images:       make(map[graphics.Handle]*nativeImage),
		views:        make(map[graphics.Handle]vk.ImageView),
		passes:       make(map[graphics.Handle]vk.RenderPass),
		framebuffers: make(map[graphics.Handle]vk.Framebuffer),
	}

	var inst vk.Instance
	err := newError(vk.CreateInstance(&vk.InstanceCreateInfo{
		SType: vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: &vk.ApplicationInfo{
			SType:              vk.StructureTypeApplicationInfo,
			ApiVersion:         uint32(vk.MakeVersion(1, 0, 0)),
			ApplicationVersion: uint32(vk.MakeVersion(1, 0, 0)),
			PApplicationName:   "geogl\x00",
			PEngineName:        "geogl\x00",
		},
	}, nil, &inst))
	if err != nil {
		return nil, err
	}
	nd.instance = inst
	if err := vk.InitInstance(inst); err != nil {
		nd.Destroy()
		return nil, err
	}

	var gpuCount uint32
	if err := newError(vk.EnumeratePhysicalDevices(inst, &gpuCount, nil)); err != nil {
		nd.Destroy()
		return nil, err
	}
	if gpuCount == 0 {
		nd.Destroy()
		return nil, ErrIncompatibleDevice
	}
	gpus := make([]vk.PhysicalDevice, gpuCount)
	if err := newError(vk.EnumeratePhysicalDevices(inst, &gpuCount, gpus)); err != nil {
		nd.Destroy()
		return nil, err
	}

	queueIndex := uint32(0)
	found := false
	for _, gpu := range gpus {
		if idx, ok := graphicsQueue(gpu); ok {
			nd.physDev, queueIndex, found = gpu, idx, true
			break
		}
	}
	if !found {
		nd.Destroy()
		return nil, ErrIncompatibleDevice
	}

	var props vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(nd.physDev, &props)
	props.Deref()
	vk.GetPhysicalDeviceMemoryProperties(nd.physDev, &nd.memProps)
	nd.memProps.Deref()
	log.Infof("Vulkan device %s", vk.ToString(props.DeviceName[:]))

	var device vk.Device
	err = newError(vk.CreateDevice(nd.physDev, &vk.DeviceCreateInfo{
		SType:                vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount: 1,
		PQueueCreateInfos: []vk.DeviceQueueCreateInfo{{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: queueIndex,
			QueueCount:       1,
			PQueuePriorities: []float32{1.0},
		}},
	}, nil, &device))
	if err != nil {
		nd.Destroy()
		return nil, err
	}
	nd.device = device
	return nd, nil
}

func graphicsQueue(gpu vk.PhysicalDevice) (uint32, bool) {
	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(gpu, &count, nil)
	families := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(gpu, &count, families)
	for i := uint32(0); i < count; i++ {
		families[i].Deref()
		if families[i].QueueFlags&vk.QueueFlags(vk.QueueGraphicsBit) != 0 {
			return i, true
		}
	}
	return 0, false
}

func (nd *nativeDevice) findMemoryType(typeBits uint32, required vk.MemoryPropertyFlagBits) (uint32, bool) {
	for i := uint32(0); i < vk.MaxMemoryTypes; i++ {
		if typeBits&(1<<i) == 0 {
			continue
		}
		nd.memProps.MemoryTypes[i].Deref()
		if nd.memProps.MemoryTypes[i].PropertyFlags&vk.MemoryPropertyFlags(required) != 0 {
			return i, true
		}
	}
	return 0, false
}

func (nd *nativeDevice) gen() graphics.Handle {
	nd.next++
	return nd.next
}

func (nd *nativeDevice) CreateImage(aspect Aspect, width, height uint32) (graphics.Handle, error) {
	format := colorFormat
	usage := vk.ImageUsageColorAttachmentBit | vk.ImageUsageSampledBit | vk.ImageUsageTransferSrcBit
	if aspect == AspectDepthStencil {
		format = depthFormat
		usage = vk.ImageUsageDepthStencilAttachmentBit
	}

	var img vk.Image
	err := newError(vk.CreateImage(nd.device, &vk.ImageCreateInfo{
		SType:         vk.StructureTypeImageCreateInfo,
		ImageType:     vk.ImageType2d,
		Format:        format,
		Extent:        vk.Extent3D{Width: width, Height: height, Depth: 1},
		MipLevels:     1,
		ArrayLayers:   1,
		Samples:       vk.SampleCount1Bit,
		Tiling:        vk.ImageTilingOptimal,
		Usage:         vk.ImageUsageFlags(usage),
		SharingMode:   vk.SharingModeExclusive,
		InitialLayout: vk.ImageLayoutUndefined,
	}, nil, &img))
	if err != nil {
		return 0, err
	}

	var reqs vk.MemoryRequirements
	vk.GetImageMemoryRequirements(nd.device, img, &reqs)
	reqs.Deref()
	memType, ok := nd.findMemoryType(reqs.MemoryTypeBits, vk.MemoryPropertyDeviceLocalBit)
	if !ok {
		vk.DestroyImage(nd.device, img, nil)
		return 0, errors.New("vulkan: no device local memory type for image")
	}

	var mem vk.DeviceMemory
	err = newError(vk.AllocateMemory(nd.device, &vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  reqs.Size,
		MemoryTypeIndex: memType,
	}, nil, &mem))
	if err != nil {
		vk.DestroyImage(nd.device, img, nil)
		return 0, err
	}
	if err := newError(vk.BindImageMemory(nd.device, img, mem, 0)); err != nil {
		vk.FreeMemory(nd.device, mem, nil)
		vk.DestroyImage(nd.device, img, nil)
		return 0, err
	}

	h := nd.gen()
	nd.images[h] = &nativeImage{image: img, memory: mem, width: width, height: height}
	return h, nil
}

func (nd *nativeDevice) DestroyImage(h graphics.Handle) {
	img, ok := nd.images[h]
	if !ok {
		return
	}
	vk.DestroyImage(nd.device, img.image, nil)
	vk.FreeMemory(nd.device, img.memory, nil)
	delete(nd.images, h)
}

func (nd *nativeDevice) ImageExtent(h graphics.Handle) (uint32, uint32) {
	img, ok := nd.images[h]
	if !ok {
		return 0, 0
	}
	return img.width, img.height
}

func (nd *nativeDevice) CreateImageView(h graphics.Handle, aspect Aspect) (graphics.Handle, error) {
	img, ok := nd.images[h]
	if !ok {
		return 0, fmt.Errorf("vulkan: unknown image %d", h)
	}
	format := colorFormat
	mask := vk.ImageAspectFlags(vk.ImageAspectColorBit)
	if aspect == AspectDepthStencil {
		format = depthFormat
		mask = vk.ImageAspectFlags(vk.ImageAspectDepthBit | vk.ImageAspectStencilBit)
	}

	var view vk.ImageView
	err := newError(vk.CreateImageView(nd.device, &vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    img.image,
		ViewType: vk.ImageViewType2d,
		Format:   format,
		Components: vk.ComponentMapping{
			R: vk.ComponentSwizzleIdentity,
			G: vk.ComponentSwizzleIdentity,
			B: vk.ComponentSwizzleIdentity,
			A: vk.ComponentSwizzleIdentity,
		},
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: mask,
			LevelCount: 1,
			LayerCount: 1,
		},
	}, nil, &view))
	if err != nil {
		return 0, err
	}
	v := nd.gen()
	nd.views[v] = view
	return v, nil
}

func (nd *nativeDevice) DestroyImageView(h graphics.Handle) {
	if view, ok := nd.views[h]; ok {
		vk.DestroyImageView(nd.device, view, nil)
		delete(nd.views, h)
	}
}

func (nd *nativeDevice) CreateRenderPass() (graphics.Handle, error) {
	attachments := []vk.AttachmentDescription{{
		Format:         colorFormat,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpStore,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutShaderReadOnlyOptimal,
	}, {
		Format:         depthFormat,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpDontCare,
		StencilLoadOp:  vk.AttachmentLoadOpClear,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutDepthStencilAttachmentOptimal,
	}}

	var pass vk.RenderPass
	err := newError(vk.CreateRenderPass(nd.device, &vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: uint32(len(attachments)),
		PAttachments:    attachments,
		SubpassCount:    1,
		PSubpasses: []vk.SubpassDescription{{
			PipelineBindPoint:    vk.PipelineBindPointGraphics,
			ColorAttachmentCount: 1,
			PColorAttachments: []vk.AttachmentReference{{
				Attachment: 0,
				Layout:     vk.ImageLayoutColorAttachmentOptimal,
			}},
			PDepthStencilAttachment: &vk.AttachmentReference{
				Attachment: 1,
				Layout:     vk.ImageLayoutDepthStencilAttachmentOptimal,
			},
		}},
	}, nil, &pass))
	if err != nil {
		return 0, err
	}
	h := nd.gen()
	nd.passes[h] = pass
	return h, nil
}

func (nd *nativeDevice) DestroyRenderPass(h graphics.Handle) {
	if pass, ok := nd.passes[h]; ok {
		vk.DestroyRenderPass(nd.device, pass, nil)
		delete(nd.passes, h)
	}
}

func (nd *nativeDevice) CreateFramebuffer(pass graphics.Handle, views []graphics.Handle, width, height uint32) (graphics.Handle, error) {
	rp, ok := nd.passes[pass]
	if !ok {
		return 0, fmt.Errorf("vulkan: unknown render pass %d", pass)
	}
	ivs := make([]vk.ImageView, 0, len(views))
	for _, v := range views {
		view, ok := nd.views[v]
		if !ok {
			return 0, fmt.Errorf("vulkan: unknown image view %d", v)
		}
		ivs = append(ivs, view)
	}

	var frame vk.Framebuffer
	err := newError(vk.CreateFramebuffer(nd.device, &vk.FramebufferCreateInfo{
		SType:           vk.StructureTypeFramebufferCreateInfo,
		RenderPass:      rp,
		AttachmentCount: uint32(len(ivs)),
		PAttachments:    ivs,
		Width:           width,
		Height:          height,
		Layers:          1,
	}, nil, &frame))
	if err != nil {
		return 0, err
	}
	h := nd.gen()
	nd.framebuffers[h] = frame
	return h, nil
}

func (nd *nativeDevice) DestroyFramebuffer(h graphics.Handle) {
	if frame, ok := nd.framebuffers[h]; ok {
		vk.DestroyFramebuffer(nd.device, frame, nil)
		delete(nd.framebuffers, h)
	}
}

func (nd *nativeDevice) WaitIdle() {
	if nd.device != nil {
		vk.DeviceWaitIdle(nd.device)
	}
}

func (nd *nativeDevice) Destroy() {
	if nd.device != nil {
		vk.DeviceWaitIdle(nd.device)
		for h := range nd.framebuffers {
			nd.DestroyFramebuffer(h)
		}
		for h := range nd.views {
			nd.DestroyImageView(h)
		}
		for h := range nd.images {
			nd.DestroyImage(h)
		}
		for h := range nd.passes {
			nd.DestroyRenderPass(h)
		}
		vk.DestroyDevice(nd.device, nil)
		nd.device = nil
	}
	if nd.instance != nil {
		vk.DestroyInstance(nd.instance, nil)
		nd.instance = nil
	}
}
