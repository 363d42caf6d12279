package render

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
)

func bytecodeWords(b []byte) []uint32 {
	words := make([]uint32, len(b)/4)
	for i := 0; i < len(words); i++ {
		byteIndex := i * 4
		words[i] = 0
		words[i] |= uint32(b[byteIndex])
		words[i] |= uint32(b[byteIndex+1]) << 8
		words[i] |= uint32(b[byteIndex+2]) << 16
		words[i] |= uint32(b[byteIndex+3]) << 24
	}

	return words
}

// createGraphicsPipeline assembles the fixed-function state for the one
// graphics pipeline. Geometry is generated in the vertex shader, so no
// vertex bindings are declared and the layout is empty. The shader modules
// live only for the duration of this call. On failure nothing is retained:
// the layout is destroyed before the error is returned.
func createGraphicsPipeline(device core1_0.CoreDeviceDriver, renderPass core1_0.RenderPass, extent core1_0.Extent2D, vertCode, fragCode []byte) (core1_0.Pipeline, core1_0.PipelineLayout, error) {
	vertShader, _, err := device.CreateShaderModule(nil, core1_0.ShaderModuleCreateInfo{
		Code: bytecodeWords(vertCode),
	})
	if err != nil {
		return core1_0.Pipeline{}, core1_0.PipelineLayout{}, errors.Wrap(err, "creating vertex shader module")
	}
	defer device.DestroyShaderModule(vertShader, nil)

	fragShader, _, err := device.CreateShaderModule(nil, core1_0.ShaderModuleCreateInfo{
		Code: bytecodeWords(fragCode),
	})
	if err != nil {
		return core1_0.Pipeline{}, core1_0.PipelineLayout{}, errors.Wrap(err, "creating fragment shader module")
	}
	defer device.DestroyShaderModule(fragShader, nil)

	pipelineLayout, _, err := device.CreatePipelineLayout(nil, core1_0.PipelineLayoutCreateInfo{})
	if err != nil {
		return core1_0.Pipeline{}, core1_0.PipelineLayout{}, errors.Wrap(err, "creating pipeline layout")
	}

	pipelines, _, err := device.CreateGraphicsPipelines(nil, nil,
		core1_0.GraphicsPipelineCreateInfo{
			Stages: []core1_0.PipelineShaderStageCreateInfo{
				{
					Stage:  core1_0.StageVertex,
					Module: vertShader,
					Name:   "main",
				},
				{
					Stage:  core1_0.StageFragment,
					Module: fragShader,
					Name:   "main",
				},
			},
			VertexInputState: &core1_0.PipelineVertexInputStateCreateInfo{},
			InputAssemblyState: &core1_0.PipelineInputAssemblyStateCreateInfo{
				Topology:               core1_0.PrimitiveTopologyTriangleList,
				PrimitiveRestartEnable: false,
			},
			ViewportState: &core1_0.PipelineViewportStateCreateInfo{
				Viewports: []core1_0.Viewport{
					{
						X:        0,
						Y:        0,
						Width:    float32(extent.Width),
						Height:   float32(extent.Height),
						MinDepth: 0,
						MaxDepth: 1,
					},
				},
				Scissors: []core1_0.Rect2D{
					{
						Offset: core1_0.Offset2D{X: 0, Y: 0},
						Extent: extent,
					},
				},
			},
			RasterizationState: &core1_0.PipelineRasterizationStateCreateInfo{
				DepthClampEnable:        false,
				RasterizerDiscardEnable: false,

				PolygonMode: core1_0.PolygonModeFill,
				CullMode:    core1_0.CullModeBack,
				FrontFace:   core1_0.FrontFaceClockwise,

				DepthBiasEnable: false,

				LineWidth: 1.0,
			},
			MultisampleState: &core1_0.PipelineMultisampleStateCreateInfo{
				SampleShadingEnable:  false,
				RasterizationSamples: core1_0.Samples1,
				MinSampleShading:     1.0,
			},
			DepthStencilState: &core1_0.PipelineDepthStencilStateCreateInfo{
				DepthTestEnable:  false,
				DepthWriteEnable: false,
			},
			ColorBlendState: &core1_0.PipelineColorBlendStateCreateInfo{
				LogicOpEnabled: false,
				LogicOp:        core1_0.LogicOpCopy,

				Attachments: []core1_0.PipelineColorBlendAttachmentState{
					{
						BlendEnabled:   false,
						ColorWriteMask: core1_0.ColorComponentRed | core1_0.ColorComponentGreen | core1_0.ColorComponentBlue | core1_0.ColorComponentAlpha,
					},
				},
			},
			Layout:            pipelineLayout,
			RenderPass:        renderPass,
			Subpass:           0,
			BasePipelineIndex: -1,
		},
	)
	if err != nil {
		device.DestroyPipelineLayout(pipelineLayout, nil)
		return core1_0.Pipeline{}, core1_0.PipelineLayout{}, errors.Wrap(err, "creating graphics pipeline")
	}

	return pipelines[0], pipelineLayout, nil
}
