package opengl

// GLSL sources for every pass. All strings are NUL-terminated for gl.Strs.

// ── Scene pass ────────────────────────────────────────────────────────────────

// Instance flag bits, mirrored from scene.InstanceFlags:
//
//	1u tile texture   2u fullbright   4u skip draw   8u alpha cutout
//
// The instanced vertex shader masks the cutout bit off; only uniform-driven
// single-mesh draws honor it.

const sceneVertInstancedSrc = `#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV;
layout(location = 3) in vec4 inColor;
layout(location = 4) in uint inFlags;
layout(location = 5) in mat4 inModel;
layout(location = 9) in mat3 inNormalMat;

uniform mat4 view;
uniform mat4 projection;

out VS_OUT {
    vec3 worldPos;
    vec3 normal;
    vec2 uv;
    vec4 tint;
} vs;
flat out uint fragFlags;

const float TILE_DIVISOR = 2.0;

vec2 tileUV(vec3 worldPos, vec3 n) {
    vec3 a = abs(n);
    if (a.y >= a.x && a.y >= a.z) {
        return worldPos.xz / TILE_DIVISOR;
    }
    if (a.x >= a.z) {
        return worldPos.zy / TILE_DIVISOR;
    }
    return worldPos.xy / TILE_DIVISOR;
}

void main() {
    fragFlags = inFlags & 7u;
    if ((inFlags & 4u) != 0u) {
        vs.worldPos = vec3(0.0);
        vs.normal = vec3(0.0, 1.0, 0.0);
        vs.uv = vec2(0.0);
        vs.tint = vec4(1.0);
        gl_Position = vec4(0.0, 0.0, 0.0, 1.0);
        return;
    }

    vec4 world = inModel * vec4(inPosition, 1.0);
    vs.worldPos = world.xyz;
    vs.normal = normalize(inNormalMat * inNormal);
    vs.tint = inColor;
    if ((inFlags & 1u) != 0u) {
        vs.uv = tileUV(world.xyz, vs.normal);
    } else {
        vs.uv = inUV;
    }
    gl_Position = projection * view * world;
}
` + "\x00"

const sceneVertSingleSrc = `#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV;
layout(location = 3) in vec4 inColor;

uniform mat4 model;
uniform mat3 normalMatrix;
uniform mat4 view;
uniform mat4 projection;
uniform uint flags;

out VS_OUT {
    vec3 worldPos;
    vec3 normal;
    vec2 uv;
    vec4 tint;
} vs;
flat out uint fragFlags;

const float TILE_DIVISOR = 2.0;

vec2 tileUV(vec3 worldPos, vec3 n) {
    vec3 a = abs(n);
    if (a.y >= a.x && a.y >= a.z) {
        return worldPos.xz / TILE_DIVISOR;
    }
    if (a.x >= a.z) {
        return worldPos.zy / TILE_DIVISOR;
    }
    return worldPos.xy / TILE_DIVISOR;
}

void main() {
    fragFlags = flags;
    if ((flags & 4u) != 0u) {
        vs.worldPos = vec3(0.0);
        vs.normal = vec3(0.0, 1.0, 0.0);
        vs.uv = vec2(0.0);
        vs.tint = vec4(1.0);
        gl_Position = vec4(0.0, 0.0, 0.0, 1.0);
        return;
    }

    vec4 world = model * vec4(inPosition, 1.0);
    vs.worldPos = world.xyz;
    vs.normal = normalize(normalMatrix * inNormal);
    vs.tint = inColor;
    if ((flags & 1u) != 0u) {
        vs.uv = tileUV(world.xyz, vs.normal);
    } else {
        vs.uv = inUV;
    }
    gl_Position = projection * view * world;
}
` + "\x00"

const sceneFragSrc = `#version 410 core
in VS_OUT {
    vec3 worldPos;
    vec3 normal;
    vec2 uv;
    vec4 tint;
} fs;
flat in uint fragFlags;

out vec4 outColor;

struct Material {
    sampler2D diffuse;
    sampler2D specular;
    float shininess;
};

struct DirLight {
    vec3 direction;
    vec3 ambient;
    vec3 diffuse;
    vec3 specular;
};

struct PointLight {
    vec3 position;
    vec3 ambient;
    vec3 diffuse;
    vec3 specular;
    float constant;
    float linear;
    float quadratic;
};

#define MAX_POINT_LIGHTS 64

uniform Material material;
uniform DirLight dirLight;
uniform PointLight pointLights[MAX_POINT_LIGHTS];
uniform int pointLightCount;
uniform vec3 viewPos;

vec3 calcDirLight(DirLight light, vec3 normal, vec3 viewDir, vec3 albedo, vec3 gloss) {
    vec3 lightDir = normalize(-light.direction);
    float diff = max(dot(normal, lightDir), 0.0);
    vec3 reflectDir = reflect(-lightDir, normal);
    float spec = pow(max(dot(viewDir, reflectDir), 0.0), material.shininess);
    return light.ambient * albedo + light.diffuse * diff * albedo + light.specular * spec * gloss;
}

vec3 calcPointLight(PointLight light, vec3 normal, vec3 viewDir, vec3 albedo, vec3 gloss) {
    vec3 toLight = light.position - fs.worldPos;
    float dist = length(toLight);
    vec3 lightDir = toLight / dist;
    float diff = max(dot(normal, lightDir), 0.0);
    vec3 reflectDir = reflect(-lightDir, normal);
    float spec = pow(max(dot(viewDir, reflectDir), 0.0), material.shininess);
    float attenuation = 1.0 / (light.constant + light.linear * dist + light.quadratic * dist * dist);
    return (light.ambient * albedo + light.diffuse * diff * albedo + light.specular * spec * gloss) * attenuation;
}

void main() {
    vec4 albedo = texture(material.diffuse, fs.uv);
    if ((fragFlags & 8u) != 0u && albedo.a < 0.1) {
        discard;
    }
    if ((fragFlags & 2u) != 0u) {
        outColor = fs.tint * albedo;
        return;
    }

    vec3 normal = normalize(fs.normal);
    vec3 viewDir = normalize(viewPos - fs.worldPos);
    vec3 gloss = texture(material.specular, fs.uv).rgb;

    vec3 result = calcDirLight(dirLight, normal, viewDir, albedo.rgb, gloss);
    for (int i = 0; i < pointLightCount; i++) {
        result += calcPointLight(pointLights[i], normal, viewDir, albedo.rgb, gloss);
    }
    outColor = vec4(result, 1.0) * fs.tint;
}
` + "\x00"

// ── Screen pass ───────────────────────────────────────────────────────────────

// screenVertSrc draws a fullscreen triangle from gl_VertexID, no VBO needed.
const screenVertSrc = `#version 410 core
out vec2 uv;

void main() {
    const vec2 pos[3] = vec2[3](
        vec2(-1.0, -1.0),
        vec2( 3.0, -1.0),
        vec2(-1.0,  3.0)
    );
    gl_Position = vec4(pos[gl_VertexID], 0.0, 1.0);
    uv = pos[gl_VertexID] * 0.5 + 0.5;
}
` + "\x00"

const screenFragSrc = `#version 410 core
in vec2 uv;
out vec4 outColor;

struct Kernel {
    int flags;
    vec3 top;
    vec3 middle;
    vec3 bottom;
    float offset;
};

struct Fog {
    int flags;
    vec3 color;
    float strength;
    float maxAttenuation;
};

uniform sampler2D screenTex;
uniform sampler2D depthTex;
uniform Kernel kernel;
uniform Fog fog;

vec3 convolve() {
    vec2 texel = kernel.offset / vec2(textureSize(screenTex, 0));
    vec3 sum = vec3(0.0);
    float weights[9] = float[](
        kernel.top.x, kernel.top.y, kernel.top.z,
        kernel.middle.x, kernel.middle.y, kernel.middle.z,
        kernel.bottom.x, kernel.bottom.y, kernel.bottom.z
    );
    for (int row = 0; row < 3; row++) {
        for (int col = 0; col < 3; col++) {
            // top row samples above the center, so +texel.y
            vec2 offset = vec2(float(col - 1), float(1 - row)) * texel;
            sum += weights[row * 3 + col] * texture(screenTex, uv + offset).rgb;
        }
    }
    return sum;
}

void main() {
    vec3 color = texture(screenTex, uv).rgb;
    if ((kernel.flags & 1) != 0) {
        color = convolve();
    }
    if ((fog.flags & 1) != 0) {
        float depth = texture(depthTex, uv).r;
        float coverage = min(pow(depth, fog.strength), fog.maxAttenuation);
        color = mix(color, fog.color, coverage);
    }
    outColor = vec4(color, 1.0);
}
` + "\x00"

// ── Skybox pass ───────────────────────────────────────────────────────────────

const skyboxVertSrc = `#version 410 core
layout(location = 0) in vec3 inPosition;

uniform mat4 view;
uniform mat4 projection;

out vec3 texDir;

void main() {
    texDir = inPosition;
    vec4 pos = projection * view * vec4(inPosition, 1.0);
    // z = w puts the box at maximum depth so it only fills uncovered pixels
    gl_Position = pos.xyww;
}
` + "\x00"

const skyboxFragSrc = `#version 410 core
in vec3 texDir;
out vec4 outColor;

uniform samplerCube skybox;

void main() {
    outColor = texture(skybox, texDir);
}
` + "\x00"

// ── UI passes ─────────────────────────────────────────────────────────────────

const uiVertSrc = `#version 410 core
layout(location = 0) in vec2 inPos;
layout(location = 1) in vec2 inTex;

uniform vec2 screenSize;
uniform vec2 atlasSize;

out vec2 uv;

void main() {
    vec2 ndc = 2.0 * (inPos / screenSize - 0.5);
    uv = inTex / atlasSize;
    gl_Position = vec4(ndc, 0.0, 1.0);
}
` + "\x00"

const uiFragSrc = `#version 410 core
in vec2 uv;
out vec4 outColor;

uniform sampler2D atlas;

void main() {
    vec4 color = texture(atlas, uv);
    if (color.a < 0.1) {
        discard;
    }
    outColor = color;
}
` + "\x00"

const spriteVertSrc = `#version 410 core
layout(location = 0) in vec2 inPos;

uniform vec2 screenSize;
uniform vec2 screenPos;
uniform vec2 screenScale;
uniform vec2 atlasPos;
uniform vec2 atlasScale;
uniform vec2 textureSizePx;
uniform float depth;

out vec2 uv;

void main() {
    // screenPos is the top-left corner in pixels; flip into GL space
    vec2 pixel = screenPos + inPos * screenScale;
    vec2 ndc = 2.0 * (pixel / screenSize - 0.5);
    ndc.y = -ndc.y;
    // atlas rect has a bottom-left origin, screen rect a top-left one
    uv = (atlasPos + vec2(inPos.x, 1.0 - inPos.y) * atlasScale) / textureSizePx;
    gl_Position = vec4(ndc, depth, 1.0);
}
` + "\x00"

const spriteFragSrc = `#version 410 core
in vec2 uv;
out vec4 outColor;

uniform sampler2D sprite;

void main() {
    vec4 color = texture(sprite, uv);
    if (color.a < 0.1) {
        discard;
    }
    outColor = color;
}
` + "\x00"
