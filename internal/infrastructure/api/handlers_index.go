package api

import (
	"html"
	"net/http"
)

func (h *JokeHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	// make sure the page and its API calls share one session
	h.session(w, r)

	modelInfo := html.EscapeString(h.model)

	page := `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1.0"/>
<meta name="theme-color" content="#4f46e5"/>
<title>Image Joke Generator</title>
<link rel="manifest" href="/manifest.webmanifest"/>
<script src="https://cdn.tailwindcss.com"></script>
<style>
body { font-family: Inter, system-ui, -apple-system, Segoe UI, Roboto, sans-serif; }
.loader{border:6px solid #374151;border-top:6px solid #6366f1;border-radius:50%;width:48px;height:48px;animation:spin 1.2s linear infinite}
@keyframes spin{0%{transform:rotate(0)}100%{transform:rotate(360deg)}}
.image-upload-area { border: 2px dashed #4b5563; border-radius: 12px; transition: all 0.3s ease; cursor: pointer; }
.image-upload-area:hover, .image-upload-area.drag-over { border-color: #6366f1; background: #1f2937; }
</style>
</head>
<body class="min-h-screen bg-gray-900 text-gray-200 flex flex-col items-center p-4 sm:p-6 lg:p-8">
<div class="w-full max-w-2xl mx-auto">
<header class="flex items-center justify-between">
<div>
<h1 class="text-3xl font-bold text-white">Image Joke Generator</h1>
<p class="text-gray-400 mt-1">Upload a picture and get a joke about it. Model: ` + modelInfo + `</p>
</div>
<button id="install-button" class="hidden bg-gray-700 hover:bg-gray-600 text-white py-2 px-4 rounded-lg">Install App</button>
</header>

<main class="mt-8 bg-gray-800 rounded-xl shadow-2xl p-6 md:p-8 space-y-6">
<div class="image-upload-area p-8 text-center" id="upload-area">
<input type="file" id="image-input" accept="image/*" class="hidden">
<div id="upload-content">
<p class="text-lg text-gray-300 mb-2">Drag &amp; drop an image, or click to choose one</p>
<p class="text-sm text-gray-500">JPG, PNG, GIF or WebP</p>
</div>
<div id="image-preview" class="hidden">
<img id="preview-image" class="max-w-full max-h-80 mx-auto rounded-lg" alt="Selected image">
<p id="image-name" class="text-sm text-gray-400 mt-2"></p>
</div>
</div>

<div class="text-center">
<button id="generate-button" disabled class="w-full sm:w-auto bg-indigo-600 hover:bg-indigo-700 disabled:bg-indigo-900 disabled:text-gray-500 disabled:cursor-not-allowed text-white font-bold py-3 px-8 rounded-lg shadow-lg">Generate Joke</button>
</div>

<div id="joke-display" class="min-h-[6rem] flex items-center justify-center bg-gray-900 rounded-lg p-6">
<div id="loading" class="hidden loader"></div>
<p id="error" class="hidden text-red-400 text-center"></p>
<p id="joke" class="hidden text-xl text-center text-white"></p>
<p id="placeholder" class="text-gray-500 text-center">Your joke will appear here.</p>
</div>
</main>
</div>

<script>
const uploadArea = document.getElementById('upload-area');
const imageInput = document.getElementById('image-input');
const generateButton = document.getElementById('generate-button');
const installButton = document.getElementById('install-button');
let deferredInstall = null;

function show(el, visible) { el.classList.toggle('hidden', !visible); }

function render(view) {
  if (!view || !view.state) { return; }
  show(document.getElementById('upload-content'), !view.hasImage);
  show(document.getElementById('image-preview'), view.hasImage);
  if (view.hasImage) {
    document.getElementById('preview-image').src = view.previewUrl;
    document.getElementById('image-name').textContent = view.imageName || '';
  }
  generateButton.disabled = !view.hasImage || view.loading;
  generateButton.textContent = view.loading ? 'Thinking...' : 'Generate Joke';

  show(document.getElementById('loading'), view.state === 'loading');
  show(document.getElementById('error'), view.state === 'failed');
  show(document.getElementById('joke'), view.state === 'succeeded');
  show(document.getElementById('placeholder'), view.state === 'idle');
  document.getElementById('error').textContent = view.error || '';
  document.getElementById('joke').textContent = view.joke || '';

  show(installButton, view.installable && deferredInstall !== null);
}

async function send(url, options) {
  const res = await fetch(url, Object.assign({ credentials: 'same-origin' }, options));
  let body = null;
  try { body = await res.json(); } catch (e) { body = null; }
  return { ok: res.ok, status: res.status, body: body };
}

async function refresh() {
  const res = await send('/api/state');
  render(res.body);
}

async function uploadFile(file, source) {
  const form = new FormData();
  form.append('image', file);
  form.append('source', source);
  const res = await send('/api/upload', { method: 'POST', body: form });
  if (res.body && res.body.state) { render(res.body); } else if (res.body) { alert(res.body.error); }
}

async function uploadDataURL(dataUrl) {
  const res = await send('/api/upload', {
    method: 'POST',
    headers: { 'Content-Type': 'application/json' },
    body: JSON.stringify({ name: 'dropped-image', dataUrl: dataUrl })
  });
  if (res.body && res.body.state) { render(res.body); } else if (res.body) { alert(res.body.error); }
}

uploadArea.addEventListener('click', () => imageInput.click());
imageInput.addEventListener('change', (e) => {
  if (e.target.files && e.target.files[0]) { uploadFile(e.target.files[0], 'picker'); }
  imageInput.value = '';
});
uploadArea.addEventListener('dragover', (e) => { e.preventDefault(); uploadArea.classList.add('drag-over'); });
uploadArea.addEventListener('dragleave', () => uploadArea.classList.remove('drag-over'));
uploadArea.addEventListener('drop', (e) => {
  e.preventDefault();
  uploadArea.classList.remove('drag-over');
  const dt = e.dataTransfer;
  if (dt.files && dt.files[0]) { uploadFile(dt.files[0], 'drop'); return; }
  const text = dt.getData('text/uri-list') || dt.getData('text/plain');
  if (text && text.indexOf('data:') === 0) { uploadDataURL(text.trim()); }
});

generateButton.addEventListener('click', async () => {
  if (generateButton.disabled) { return; }
  render({ state: 'loading', loading: true, hasImage: true, previewUrl: document.getElementById('preview-image').src });
  const res = await send('/api/joke', { method: 'POST' });
  if (res.body && res.body.state) { render(res.body); } else { refresh(); }
});

window.addEventListener('beforeinstallprompt', async (event) => {
  event.preventDefault();
  deferredInstall = event;
  const res = await send('/api/install/offer', {
    method: 'POST',
    headers: { 'Content-Type': 'application/json' },
    body: JSON.stringify({ platforms: event.platforms || [] })
  });
  render(res.body);
});

installButton.addEventListener('click', async () => {
  if (!deferredInstall) { return; }
  const prompt = deferredInstall;
  deferredInstall = null;
  prompt.prompt();
  const choice = await prompt.userChoice;
  await send('/api/install/outcome', {
    method: 'POST',
    headers: { 'Content-Type': 'application/json' },
    body: JSON.stringify({ outcome: choice.outcome })
  });
  refresh();
});

window.addEventListener('pagehide', () => {
  fetch('/api/session', { method: 'DELETE', credentials: 'same-origin', keepalive: true });
});

refresh();
</script>
</body>
</html>`

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page))
}
